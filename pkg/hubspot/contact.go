package hubspot

import (
	"encoding/json"
	"maps"
	"slices"
)

// Contact is a contact record as HubSpot returns it. Portals define their own
// properties, so the record is kept as raw JSON per top-level field.
type Contact map[string]json.RawMessage

func (c *Contact) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("Contact", data)
	if err != nil {
		return err
	}
	*c = Contact(obj.fields)
	return nil
}

// Get returns the raw value of a top-level field.
func (c Contact) Get(key string) (json.RawMessage, bool) {
	v, ok := c[key]
	return v, ok
}

// Decode unmarshals a top-level field into dst. A missing or null field is
// an error.
func (c Contact) Decode(key string, dst any) error {
	return object{typ: "Contact", fields: c}.required(key, dst)
}

// ID returns the contact's vid.
func (c Contact) ID() (ContactID, error) {
	var id ContactID
	if err := c.Decode("vid", &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Property returns properties.<name>.value, the current value of a contact
// property in HubSpot's profile representation.
func (c Contact) Property(name string) (string, bool) {
	var props map[string]struct {
		Value *string `json:"value"`
	}
	if err := c.Decode("properties", &props); err != nil {
		return "", false
	}
	p, ok := props[name]
	if !ok || p.Value == nil {
		return "", false
	}
	return *p.Value, true
}

// PropertyValue assigns a value to a contact property in write requests.
// Property names are not checked against the portal's schema.
type PropertyValue struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("PropertyValue", data)
	if err != nil {
		return err
	}
	var out PropertyValue
	if err := obj.required("property", &out.Property); err != nil {
		return err
	}
	if err := obj.required("value", &out.Value); err != nil {
		return err
	}
	*v = out
	return nil
}

// PropertyValues builds a write list from a name/value map, sorted by name.
func PropertyValues(values map[string]string) []PropertyValue {
	out := make([]PropertyValue, 0, len(values))
	for _, k := range slices.Sorted(maps.Keys(values)) {
		out = append(out, PropertyValue{Property: k, Value: values[k]})
	}
	return out
}

// ContactPage is one page of the all-contacts listing.
type ContactPage struct {
	Contacts  []Contact `json:"contacts"`
	HasMore   bool      `json:"has-more"`
	VidOffset ContactID `json:"vid-offset"`
}
