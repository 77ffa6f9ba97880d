package jira

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// FieldCatalog indexes field metadata by id and by display name, so a
// user may address a field either way on the command line.
type FieldCatalog struct {
	idToName map[string]string
	nameToID map[string]string
	byID     map[string]*FieldInfo
}

// NewFieldCatalog builds a catalog from the raw global field list.
func NewFieldCatalog(rawFields []map[string]any) *FieldCatalog {
	catalog := &FieldCatalog{
		idToName: make(map[string]string, len(rawFields)),
		nameToID: make(map[string]string, len(rawFields)),
		byID:     make(map[string]*FieldInfo, len(rawFields)),
	}
	for _, raw := range rawFields {
		info := NewFieldInfo(raw)
		id, _ := raw["id"].(string)
		if id == "" {
			id = info.Key()
		}
		catalog.idToName[id] = info.Name()
		catalog.nameToID[info.Name()] = id
		catalog.byID[id] = info
	}
	return catalog
}

// MergeEditMeta overlays issue-specific editable field metadata on top
// of the global catalog. Editmeta descriptions carry allowed values
// the global list does not.
func (c *FieldCatalog) MergeEditMeta(fields map[string]map[string]any) {
	for id, raw := range fields {
		info := NewFieldInfo(raw)
		c.byID[id] = info
		if _, ok := c.idToName[id]; !ok {
			c.idToName[id] = info.Name()
			c.nameToID[info.Name()] = id
		}
	}
}

// ResolveID maps a user-supplied field name or id to the field id.
func (c *FieldCatalog) ResolveID(nameOrID string) (string, error) {
	if id, ok := c.nameToID[nameOrID]; ok {
		return id, nil
	}
	if _, ok := c.idToName[nameOrID]; ok {
		return nameOrID, nil
	}
	return "", fmt.Errorf("not found field: %s", nameOrID)
}

// Info returns the metadata for a resolved field id.
func (c *FieldCatalog) Info(id string) (*FieldInfo, error) {
	info, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("information not found for field: %s", id)
	}
	return info, nil
}

// Link is one requested issue link: the new issue points at IssueKey
// with the named link type.
type Link struct {
	IssueKey string
	Type     string
}

// Creator assembles a field map from raw command-line values, creates
// the issue and applies requested links.
type Creator struct {
	client *Client
	conv   *Converter
	logger *slog.Logger
}

// NewCreator creates a Creator backed by the given client.
func NewCreator(client *Client, logger *slog.Logger) *Creator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Creator{
		client: client,
		conv:   NewConverter(client),
		logger: logger,
	}
}

// LoadCatalog fetches the global field list and enriches it with the
// editmeta of a sample issue matching the requested type and project.
func (cr *Creator) LoadCatalog(issueType, project string) (*FieldCatalog, error) {
	rawFields, err := cr.client.Fields()
	if err != nil {
		return nil, err
	}
	catalog := NewFieldCatalog(rawFields)

	sample, err := cr.client.FindIssueByType(issueType, project)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		cr.logger.Warn("No issue found to read editable field metadata from", "issuetype", issueType, "project", project)
		return catalog, nil
	}

	meta, err := cr.client.EditMeta(sample.Key)
	if err != nil {
		return nil, err
	}
	catalog.MergeEditMeta(meta)
	return catalog, nil
}

// BuildFields resolves field names to ids and converts every raw value
// through the rule list. Fields matched by no rule keep their first
// raw value verbatim.
func (cr *Creator) BuildFields(values map[string][]string, catalog *FieldCatalog) (map[string]any, error) {
	resolved := make(map[string][]string, len(values))
	for nameOrID, fieldValues := range values {
		id, err := catalog.ResolveID(nameOrID)
		if err != nil {
			return nil, err
		}
		resolved[id] = fieldValues
	}

	final := make(map[string]any, len(resolved))
	for id, fieldValues := range resolved {
		info, err := catalog.Info(id)
		if err != nil {
			return nil, err
		}
		converted, matched, err := cr.conv.Convert(fieldValues, info)
		if err != nil {
			return nil, err
		}
		if !matched {
			converted = fieldValues[0]
		}
		final[id] = converted
	}
	return final, nil
}

// Run executes the full creation pipeline. Validation and conversion
// failures abort before any tracker mutation; link failures after a
// successful creation are logged and do not undo anything.
func (cr *Creator) Run(values map[string][]string, links []Link) error {
	if len(values["issuetype"]) == 0 || len(values["project"]) == 0 {
		return fmt.Errorf("fields are not set: issuetype and/or project")
	}

	catalog, err := cr.LoadCatalog(values["issuetype"][0], values["project"][0])
	if err != nil {
		return err
	}

	fields, err := cr.BuildFields(values, catalog)
	if err != nil {
		return err
	}

	if dump, err := json.MarshalIndent(fields, "", "    "); err == nil {
		cr.logger.Debug("Final field map", "fields", string(dump))
	}

	created, err := cr.client.CreateIssue(fields)
	if err != nil {
		return err
	}
	cr.logger.Info("Successfully created a new issue", "link", cr.client.BrowseURL(created.Key))

	cr.ApplyLinks(created.Key, links)
	return nil
}

// ApplyLinks links the created issue to every requested target. Each
// link is independent; a failure is logged and the rest proceed.
func (cr *Creator) ApplyLinks(originKey string, links []Link) {
	for _, link := range links {
		target, err := cr.client.Issue(link.IssueKey)
		if err != nil {
			cr.logger.Error("Failed to link issue", "target", link.IssueKey, "error", err)
			continue
		}
		if err := cr.client.CreateIssueLink(link.Type, originKey, target.Key); err != nil {
			cr.logger.Error("Failed to link issue", "target", target.Key, "type", link.Type, "error", err)
			continue
		}
		cr.logger.Info("Successfully linked issues", "origin", originKey, "target", target.Key, "type", link.Type)
	}
}
