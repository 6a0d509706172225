package hubspot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactProfileJSON = `{
	"vid": 3234574,
	"canonical-vid": 3234574,
	"portal-id": 62515,
	"is-contact": true,
	"properties": {
		"email": {"value": "testingapis@hubspot.com", "versions": []},
		"favorite_color": {"value": "teal"},
		"lastname": {"value": null}
	},
	"identity-profiles": [{"vid": 3234574, "identities": []}],
	"custom_nested": {"a": [1, 2, {"b": null}]}
}`

func TestContact_PreservesUnknownFields(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(contactProfileJSON), &c))

	raw, ok := c.Get("custom_nested")
	require.True(t, ok)
	assert.JSONEq(t, `{"a": [1, 2, {"b": null}]}`, string(raw))

	var portal PortalID
	require.NoError(t, c.Decode("portal-id", &portal))
	assert.Equal(t, PortalID(62515), portal)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, contactProfileJSON, string(b))
}

func TestContact_IDAndProperty(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(contactProfileJSON), &c))

	id, err := c.ID()
	require.NoError(t, err)
	assert.Equal(t, ContactID(3234574), id)

	email, ok := c.Property("email")
	assert.True(t, ok)
	assert.Equal(t, "testingapis@hubspot.com", email)

	color, ok := c.Property("favorite_color")
	assert.True(t, ok)
	assert.Equal(t, "teal", color)

	_, ok = c.Property("lastname")
	assert.False(t, ok)
	_, ok = c.Property("nope")
	assert.False(t, ok)
}

func TestContact_NotAnObject(t *testing.T) {
	for _, payload := range []string{`[1,2]`, `null`, `"contact"`} {
		var c Contact
		err := json.Unmarshal([]byte(payload), &c)
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), "payload %s", payload)
		assert.Equal(t, "Contact", decodeErr.Type)
	}
}

func TestContact_IDMissing(t *testing.T) {
	c := Contact{"email": json.RawMessage(`"a@b.com"`)}
	_, err := c.ID()
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "vid", decodeErr.Field)

	c["vid"] = json.RawMessage(`null`)
	_, err = c.ID()
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "vid", decodeErr.Field)
}

func TestPropertyValue_Codec(t *testing.T) {
	b, err := json.Marshal(PropertyValue{Property: "favorite_color", Value: "teal"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"property":"favorite_color","value":"teal"}`, string(b))

	var v PropertyValue
	require.NoError(t, json.Unmarshal([]byte(`{"property":"not_defined_anywhere","value":"x"}`), &v))
	assert.Equal(t, PropertyValue{Property: "not_defined_anywhere", Value: "x"}, v)

	err = json.Unmarshal([]byte(`{"property":"a"}`), &v)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "PropertyValue", decodeErr.Type)
	assert.Equal(t, "value", decodeErr.Field)
}

func TestPropertyValues_SortedByName(t *testing.T) {
	values := PropertyValues(map[string]string{"lastname": "Doe", "email": "a@b.com", "firstname": "Jo"})
	assert.Equal(t, []PropertyValue{
		{Property: "email", Value: "a@b.com"},
		{Property: "firstname", Value: "Jo"},
		{Property: "lastname", Value: "Doe"},
	}, values)
}
