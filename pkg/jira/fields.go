package jira

import "fmt"

// FieldType classifies a field's declared schema type.
type FieldType int

const (
	FieldTypeNone FieldType = iota
	FieldTypeArray
	FieldTypeString
	FieldTypeEnum
	FieldTypeTimeTracking
)

// String returns the schema type name.
func (t FieldType) String() string {
	switch t {
	case FieldTypeArray:
		return "array"
	case FieldTypeString:
		return "string"
	case FieldTypeEnum:
		return "enum"
	case FieldTypeTimeTracking:
		return "timetracking"
	default:
		return "none"
	}
}

// AllowedValue wraps one option of an enumerated field.
type AllowedValue struct {
	raw map[string]any
}

// NewAllowedValue wraps a raw allowed-value description.
func NewAllowedValue(raw map[string]any) AllowedValue {
	return AllowedValue{raw: raw}
}

// Raw returns the underlying description.
func (v AllowedValue) Raw() map[string]any {
	return v.raw
}

// DisplayValue returns the option's display value, taken from the
// "value" attribute or, failing that, "name". An option carrying
// neither is malformed.
func (v AllowedValue) DisplayValue() (string, error) {
	if s, ok := v.raw["value"].(string); ok {
		return s, nil
	}
	if s, ok := v.raw["name"].(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("no value or name fields in allowed values information: %v", v.raw)
}

// ID returns the identifier submitted to the API for this option.
func (v AllowedValue) ID() string {
	switch id := v.raw["id"].(type) {
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// FieldInfo is a read-only view over one field's raw schema
// description as returned by the field or editmeta APIs.
type FieldInfo struct {
	raw map[string]any
}

// NewFieldInfo wraps a raw field description.
func NewFieldInfo(raw map[string]any) *FieldInfo {
	return &FieldInfo{raw: raw}
}

// Raw returns the underlying description.
func (f *FieldInfo) Raw() map[string]any {
	return f.raw
}

// Name returns the field's display name.
func (f *FieldInfo) Name() string {
	s, _ := f.raw["name"].(string)
	return s
}

// Key returns the field's key, falling back to its id.
func (f *FieldInfo) Key() string {
	if s, ok := f.raw["key"].(string); ok {
		return s
	}
	s, _ := f.raw["id"].(string)
	return s
}

// classifyType maps a declared schema type name to a FieldType,
// falling back to Enum when the field carries allowed values.
func (f *FieldInfo) classifyType(typeName string) FieldType {
	switch {
	case typeName == "array":
		return FieldTypeArray
	case typeName == "string":
		return FieldTypeString
	default:
		if _, ok := f.raw["allowedValues"]; ok {
			return FieldTypeEnum
		}
	}
	return FieldTypeNone
}

// Type classifies the field's declared schema type.
func (f *FieldInfo) Type() FieldType {
	schema, ok := f.raw["schema"].(map[string]any)
	if !ok {
		return f.classifyType("")
	}
	typeName, _ := schema["type"].(string)
	return f.classifyType(typeName)
}

// ItemsType classifies the item type of an array field, applying the
// same decision order to the schema's nested "items" type name.
func (f *FieldInfo) ItemsType() FieldType {
	schema, ok := f.raw["schema"].(map[string]any)
	if !ok {
		return FieldTypeNone
	}
	itemsName, ok := schema["items"].(string)
	if !ok {
		return FieldTypeNone
	}
	return f.classifyType(itemsName)
}

// AllowedValues returns the field's enumerated options keyed by their
// display value. It returns nil unless the field's own type or its
// item type is Enum.
func (f *FieldInfo) AllowedValues() (map[string]AllowedValue, error) {
	if f.Type() != FieldTypeEnum && f.ItemsType() != FieldTypeEnum {
		return nil, nil
	}

	rawValues, _ := f.raw["allowedValues"].([]any)
	allowed := make(map[string]AllowedValue, len(rawValues))
	for _, entry := range rawValues {
		rawValue, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed allowed value in field %q: %v", f.Name(), entry)
		}
		value := NewAllowedValue(rawValue)
		display, err := value.DisplayValue()
		if err != nil {
			return nil, err
		}
		allowed[display] = value
	}
	return allowed, nil
}
