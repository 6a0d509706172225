package hubspot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lifecycleStageJSON = `{
	"name": "lifecyclestage",
	"label": "Lifecycle Stage",
	"description": "The qualification of contacts to sales readiness.",
	"groupName": "contactinformation",
	"type": "enumeration",
	"fieldType": "radio",
	"formField": true,
	"displayOrder": 3,
	"options": [
		{"label": "Subscriber", "value": "subscriber", "displayOrder": 0},
		{"label": "Lead", "value": "lead", "displayOrder": 1}
	]
}`

func TestPropertyType_KnownAndUnknown(t *testing.T) {
	var known PropertyType
	require.NoError(t, json.Unmarshal([]byte(`"enumeration"`), &known))
	kind, ok := known.Kind()
	assert.True(t, ok)
	assert.Equal(t, PropertyEnumeration, kind)
	assert.Equal(t, KnownPropertyType(PropertyEnumeration), known)

	var unknown PropertyType
	require.NoError(t, json.Unmarshal([]byte(`"weirdtype"`), &unknown))
	_, ok = unknown.Kind()
	assert.False(t, ok)
	assert.Equal(t, UnknownPropertyType("weirdtype"), unknown)

	b, err := json.Marshal(unknown)
	require.NoError(t, err)
	assert.Equal(t, `"weirdtype"`, string(b))
}

func TestPropertyType_WireSpellings(t *testing.T) {
	want := map[PropertyKind]string{
		PropertyString:      "string",
		PropertyNumber:      "number",
		PropertyBool:        "bool",
		PropertyDatetime:    "datetime",
		PropertyEnumeration: "enumeration",
	}
	for kind, spelling := range want {
		b, err := json.Marshal(KnownPropertyType(kind))
		require.NoError(t, err)
		assert.Equal(t, `"`+spelling+`"`, string(b))
		assert.Equal(t, KnownPropertyType(kind), ParsePropertyType(spelling))
	}

	// Matching is exact.
	_, ok := ParsePropertyType("Enumeration").Kind()
	assert.False(t, ok)
}

func TestFieldType_WireSpellings(t *testing.T) {
	want := map[FieldKind]string{
		FieldTextarea: "textarea",
		FieldSelect:   "select",
		FieldText:     "text",
		FieldDate:     "date",
		FieldFile:     "file",
		FieldNumber:   "number",
		FieldRadio:    "radio",
		FieldCheckbox: "checkbox",
	}
	for kind, spelling := range want {
		b, err := json.Marshal(KnownFieldType(kind))
		require.NoError(t, err)
		assert.Equal(t, `"`+spelling+`"`, string(b))
		assert.Equal(t, KnownFieldType(kind), ParseFieldType(spelling))
	}

	var phone PropertyFieldType
	require.NoError(t, json.Unmarshal([]byte(`"phonenumber"`), &phone))
	assert.Equal(t, UnknownFieldType("phonenumber"), phone)
	assert.Equal(t, "phonenumber", phone.String())
}

func TestPropertyType_NonStringIsDecodeError(t *testing.T) {
	var pt PropertyType
	err := json.Unmarshal([]byte(`7`), &pt)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "PropertyType", decodeErr.Type)
}

func TestProperty_Decode(t *testing.T) {
	var p Property
	require.NoError(t, json.Unmarshal([]byte(lifecycleStageJSON), &p))

	assert.Equal(t, "lifecyclestage", p.Name)
	assert.Equal(t, "contactinformation", p.GroupName)
	assert.Equal(t, KnownPropertyType(PropertyEnumeration), p.Type)
	assert.Equal(t, KnownFieldType(FieldRadio), p.FieldType)
	assert.True(t, p.FormField)
	assert.Equal(t, 3, p.DisplayOrder)
	require.Len(t, p.Options, 2)
	assert.Equal(t, PropertyOption{Label: "Lead", Value: "lead", DisplayOrder: 1}, p.Options[1])
}

func TestProperty_UnknownTagsDoNotFail(t *testing.T) {
	payload := `{"name":"mobile","label":"Mobile","description":"","groupName":"contactinformation",
		"type":"phone_number","fieldType":"phonenumber","formField":false,"displayOrder":-1,"options":[]}`

	var p Property
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	assert.Equal(t, UnknownPropertyType("phone_number"), p.Type)
	assert.Equal(t, UnknownFieldType("phonenumber"), p.FieldType)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(b))
}

func TestProperty_MissingFieldIsDecodeError(t *testing.T) {
	for _, field := range []string{"name", "label", "description", "groupName", "type", "fieldType", "formField", "displayOrder", "options"} {
		t.Run(field, func(t *testing.T) {
			var m map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(lifecycleStageJSON), &m))
			delete(m, field)
			payload, err := json.Marshal(m)
			require.NoError(t, err)

			var p Property
			err = json.Unmarshal(payload, &p)
			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %v", err)
			assert.Equal(t, "Property", decodeErr.Type)
			assert.Equal(t, field, decodeErr.Field)
		})
	}
}

func TestProperty_WrongKindIsDecodeError(t *testing.T) {
	payload := `{"name":"x","label":"X","description":"","groupName":"g","type":"string",
		"fieldType":"text","formField":"yes","displayOrder":0,"options":[]}`

	var p Property
	err := json.Unmarshal([]byte(payload), &p)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "formField", decodeErr.Field)
}

func TestProperty_EncodesEmptyOptions(t *testing.T) {
	p := Property{Name: "x", Type: KnownPropertyType(PropertyString), FieldType: KnownFieldType(FieldText)}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"options":[]`)

	var back Property
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "x", back.Name)
}

func TestPropertyOption_MissingValue(t *testing.T) {
	var o PropertyOption
	err := json.Unmarshal([]byte(`{"label":"Lead","displayOrder":1}`), &o)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "PropertyOption", decodeErr.Type)
	assert.Equal(t, "value", decodeErr.Field)
}

func TestGroup_MissingPropertiesDecodesEmpty(t *testing.T) {
	var g Group
	require.NoError(t, json.Unmarshal([]byte(`{"name":"contactinformation","displayName":"Contact Information","displayOrder":0,"portalId":62515}`), &g))
	assert.Equal(t, "contactinformation", g.Name)
	assert.Equal(t, PortalID(62515), g.PortalID)
	assert.NotNil(t, g.Properties)
	assert.Empty(t, g.Properties)

	var explicit Group
	require.NoError(t, json.Unmarshal([]byte(`{"name":"contactinformation","displayName":"Contact Information","displayOrder":0,"portalId":62515,"properties":[]}`), &explicit))
	assert.Equal(t, g, explicit)
}

func TestGroup_NullPropertiesDecodesEmpty(t *testing.T) {
	var g Group
	require.NoError(t, json.Unmarshal([]byte(`{"name":"sales","displayName":"Sales","displayOrder":2,"portalId":62515,"properties":null}`), &g))
	assert.NotNil(t, g.Properties)
	assert.Empty(t, g.Properties)
}

func TestGroup_NullRequiredFieldIsDecodeError(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"name":"sales","displayName":"Sales","displayOrder":2,"portalId":null}`), &g)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr), "got %v", err)
	assert.Equal(t, "Group", decodeErr.Type)
	assert.Equal(t, "portalId", decodeErr.Field)
}

func TestGroup_EncodeOmitsEmptyProperties(t *testing.T) {
	g := Group{Name: "sales", DisplayName: "Sales", DisplayOrder: 2, PortalID: 62515, Properties: []Property{}}
	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"sales","displayName":"Sales","displayOrder":2,"portalId":62515}`, string(b))
	assert.NotContains(t, string(b), "properties")
}

func TestGroup_EncodeIncludesProperties(t *testing.T) {
	var p Property
	require.NoError(t, json.Unmarshal([]byte(lifecycleStageJSON), &p))

	g := Group{Name: "contactinformation", DisplayName: "Contact Information", PortalID: 62515, Properties: []Property{p}}
	b, err := json.Marshal(g)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	var props []json.RawMessage
	require.NoError(t, json.Unmarshal(raw["properties"], &props))
	require.Len(t, props, 1)
	assert.JSONEq(t, lifecycleStageJSON, string(props[0]))

	var back Group
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, g, back)
}

func TestGroup_InvalidPropertyFails(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"name":"g","displayName":"G","displayOrder":0,"portalId":1,"properties":[{"name":"x"}]}`), &g)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "Group", decodeErr.Type)
	assert.Equal(t, "properties", decodeErr.Field)

	var inner *DecodeError
	require.True(t, errors.As(decodeErr.Err, &inner))
	assert.Equal(t, "Property", inner.Type)
}

func TestGroup_MissingPortalID(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"name":"g","displayName":"G","displayOrder":0}`), &g)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "portalId", decodeErr.Field)
}
