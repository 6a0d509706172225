package hubspot

import (
	"encoding/json"
)

// PropertyKind is a property type HubSpot documents.
type PropertyKind int

const (
	PropertyString PropertyKind = iota + 1
	PropertyNumber
	PropertyBool
	PropertyDatetime
	PropertyEnumeration
)

var propertyKindNames = map[PropertyKind]string{
	PropertyString:      "string",
	PropertyNumber:      "number",
	PropertyBool:        "bool",
	PropertyDatetime:    "datetime",
	PropertyEnumeration: "enumeration",
}

func (k PropertyKind) String() string { return propertyKindNames[k] }

// FieldKind is a form field type HubSpot documents.
type FieldKind int

const (
	FieldTextarea FieldKind = iota + 1
	FieldSelect
	FieldText
	FieldDate
	FieldFile
	FieldNumber
	FieldRadio
	FieldCheckbox
)

var fieldKindNames = map[FieldKind]string{
	FieldTextarea: "textarea",
	FieldSelect:   "select",
	FieldText:     "text",
	FieldDate:     "date",
	FieldFile:     "file",
	FieldNumber:   "number",
	FieldRadio:    "radio",
	FieldCheckbox: "checkbox",
}

func (k FieldKind) String() string { return fieldKindNames[k] }

// PropertyType is either a known PropertyKind or, when HubSpot sends a
// value this package does not know yet, the raw string as received.
type PropertyType struct {
	kind PropertyKind
	raw  string
}

func KnownPropertyType(k PropertyKind) PropertyType { return PropertyType{kind: k} }

func UnknownPropertyType(raw string) PropertyType { return PropertyType{raw: raw} }

// ParsePropertyType never fails: unrecognised spellings become unknown types.
func ParsePropertyType(s string) PropertyType {
	for k, name := range propertyKindNames {
		if name == s {
			return KnownPropertyType(k)
		}
	}
	return UnknownPropertyType(s)
}

// Kind returns the known kind, or false for an unknown type.
func (t PropertyType) Kind() (PropertyKind, bool) {
	return t.kind, t.kind != 0
}

func (t PropertyType) String() string {
	if t.kind != 0 {
		return t.kind.String()
	}
	return t.raw
}

func (t PropertyType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *PropertyType) UnmarshalJSON(data []byte) error {
	s, ok, err := decodeString("PropertyType", data)
	if err != nil || !ok {
		return err
	}
	*t = ParsePropertyType(s)
	return nil
}

// PropertyFieldType is either a known FieldKind or the raw string received.
type PropertyFieldType struct {
	kind FieldKind
	raw  string
}

func KnownFieldType(k FieldKind) PropertyFieldType { return PropertyFieldType{kind: k} }

func UnknownFieldType(raw string) PropertyFieldType { return PropertyFieldType{raw: raw} }

func ParseFieldType(s string) PropertyFieldType {
	for k, name := range fieldKindNames {
		if name == s {
			return KnownFieldType(k)
		}
	}
	return UnknownFieldType(s)
}

func (t PropertyFieldType) Kind() (FieldKind, bool) {
	return t.kind, t.kind != 0
}

func (t PropertyFieldType) String() string {
	if t.kind != 0 {
		return t.kind.String()
	}
	return t.raw
}

func (t PropertyFieldType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *PropertyFieldType) UnmarshalJSON(data []byte) error {
	s, ok, err := decodeString("PropertyFieldType", data)
	if err != nil || !ok {
		return err
	}
	*t = ParseFieldType(s)
	return nil
}

// PropertyOption is one selectable value of an enumeration property.
type PropertyOption struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
}

func (o *PropertyOption) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("PropertyOption", data)
	if err != nil {
		return err
	}
	var out PropertyOption
	if err := obj.required("label", &out.Label); err != nil {
		return err
	}
	if err := obj.required("value", &out.Value); err != nil {
		return err
	}
	if err := obj.required("displayOrder", &out.DisplayOrder); err != nil {
		return err
	}
	*o = out
	return nil
}

// Property describes one contact field.
type Property struct {
	Name         string            `json:"name"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	GroupName    string            `json:"groupName"`
	Type         PropertyType      `json:"type"`
	FieldType    PropertyFieldType `json:"fieldType"`
	FormField    bool              `json:"formField"`
	DisplayOrder int               `json:"displayOrder"`
	Options      []PropertyOption  `json:"options"`
}

func (p Property) MarshalJSON() ([]byte, error) {
	type plain Property
	if p.Options == nil {
		p.Options = []PropertyOption{}
	}
	return json.Marshal(plain(p))
}

// UnmarshalJSON requires every field. Only type and fieldType tolerate
// values outside the known set.
func (p *Property) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("Property", data)
	if err != nil {
		return err
	}
	var out Property
	for _, f := range []struct {
		key string
		dst any
	}{
		{"name", &out.Name},
		{"label", &out.Label},
		{"description", &out.Description},
		{"groupName", &out.GroupName},
		{"type", &out.Type},
		{"fieldType", &out.FieldType},
		{"formField", &out.FormField},
		{"displayOrder", &out.DisplayOrder},
		{"options", &out.Options},
	} {
		if err := obj.required(f.key, f.dst); err != nil {
			return err
		}
	}
	*p = out
	return nil
}

// Group is a named set of contact properties.
type Group struct {
	Name         string
	DisplayName  string
	DisplayOrder int
	PortalID     PortalID
	Properties   []Property
}

// MarshalJSON leaves out "properties" when there are none.
func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name         string     `json:"name"`
		DisplayName  string     `json:"displayName"`
		DisplayOrder int        `json:"displayOrder"`
		PortalID     PortalID   `json:"portalId"`
		Properties   []Property `json:"properties,omitempty"`
	}{g.Name, g.DisplayName, g.DisplayOrder, g.PortalID, g.Properties})
}

// UnmarshalJSON treats a missing or null "properties" field as an empty list.
func (g *Group) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("Group", data)
	if err != nil {
		return err
	}
	out := Group{Properties: []Property{}}
	if err := obj.required("name", &out.Name); err != nil {
		return err
	}
	if err := obj.required("displayName", &out.DisplayName); err != nil {
		return err
	}
	if err := obj.required("displayOrder", &out.DisplayOrder); err != nil {
		return err
	}
	if err := obj.required("portalId", &out.PortalID); err != nil {
		return err
	}
	if _, err := obj.optional("properties", &out.Properties); err != nil {
		return err
	}
	*g = out
	return nil
}
