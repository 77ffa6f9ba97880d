package jira

import (
	"fmt"
	"strconv"
)

// sprintFieldID is the Sprint custom field on our instance; it takes a
// bare numeric sprint id instead of a wrapped object.
const sprintFieldID = "customfield_10113"

// convertFunc transforms raw string values into the JSON-shaped value
// the issue-creation API expects for one field.
type convertFunc func(values []string, info *FieldInfo) (any, error)

// rule pairs a discriminant with a converter. A rule matches either by
// field key or, when key is empty, by the field's classified type.
type rule struct {
	key  string
	kind FieldType
	fn   convertFunc
}

func (r rule) matches(info *FieldInfo) bool {
	if r.key != "" {
		return info.Key() == r.key
	}
	return info.Type() == r.kind
}

// Converter resolves raw field values against field metadata. Rules
// are tried in a fixed order and the first match wins; fields matched
// by no rule are left to the caller to pass through verbatim.
type Converter struct {
	client *Client
	rules  []rule
}

// NewConverter creates a converter backed by the given client for
// project and user lookups.
func NewConverter(client *Client) *Converter {
	c := &Converter{client: client}
	c.rules = []rule{
		{key: "project", fn: c.valuesToProject},
		{key: "issuetype", fn: c.valuesToIssueType},
		{key: "components", fn: c.valuesToComponents},
		{key: "labels", fn: c.valuesToLabels},
		{key: "assignee", fn: c.valuesToAssignee},
		{key: sprintFieldID, fn: c.valuesToInt},
		{key: "timetracking", fn: c.valuesToTimeTracking},
		{kind: FieldTypeEnum, fn: c.valuesToEnum},
		{kind: FieldTypeArray, fn: c.valuesToArray},
	}
	return c
}

// Convert runs the rule list against one field. The second return
// value reports whether any rule matched; when none did, the caller
// uses the first raw value unchanged.
func (c *Converter) Convert(values []string, info *FieldInfo) (any, bool, error) {
	if len(values) == 0 {
		return nil, false, fmt.Errorf("no values supplied for field %q", info.Name())
	}
	for _, r := range c.rules {
		if r.matches(info) {
			converted, err := r.fn(values, info)
			if err != nil {
				return nil, true, err
			}
			return converted, true, nil
		}
	}
	return nil, false, nil
}

func (c *Converter) valuesToProject(values []string, _ *FieldInfo) (any, error) {
	project, err := c.client.Project(values[0])
	if err != nil {
		return nil, err
	}
	return map[string]any{"key": project.Key}, nil
}

func (c *Converter) valuesToIssueType(values []string, _ *FieldInfo) (any, error) {
	return map[string]any{"name": values[0]}, nil
}

func (c *Converter) valuesToComponents(values []string, _ *FieldInfo) (any, error) {
	components := make([]any, 0, len(values))
	for _, value := range values {
		components = append(components, map[string]any{"name": value})
	}
	return components, nil
}

func (c *Converter) valuesToLabels(values []string, _ *FieldInfo) (any, error) {
	return append([]string(nil), values...), nil
}

func (c *Converter) valuesToAssignee(values []string, _ *FieldInfo) (any, error) {
	user, err := c.client.FindUser(values[0])
	if err != nil {
		return nil, err
	}
	return map[string]any{"accountId": user.AccountID}, nil
}

func (c *Converter) valuesToInt(values []string, info *FieldInfo) (any, error) {
	number, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, fmt.Errorf("field %q expects a numeric value, got %q", info.Name(), values[0])
	}
	return number, nil
}

func (c *Converter) valuesToTimeTracking(values []string, _ *FieldInfo) (any, error) {
	return map[string]any{"originalEstimate": values[0]}, nil
}

func (c *Converter) valuesToEnum(values []string, info *FieldInfo) (any, error) {
	allowed, err := info.AllowedValues()
	if err != nil {
		return nil, err
	}
	value, ok := allowed[values[0]]
	if !ok {
		return nil, fmt.Errorf("no value %q in field %q", values[0], info.Name())
	}
	return map[string]any{"id": value.ID()}, nil
}

func (c *Converter) valuesToArray(values []string, info *FieldInfo) (any, error) {
	if info.ItemsType() != FieldTypeEnum {
		return values, nil
	}
	array := make([]any, 0, len(values))
	for _, value := range values {
		converted, err := c.valuesToEnum([]string{value}, info)
		if err != nil {
			return nil, err
		}
		array = append(array, converted)
	}
	return array, nil
}
