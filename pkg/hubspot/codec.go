package hubspot

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	errMissingField = errors.New("missing required field")
	errNullField    = errors.New("required field is null")
	errNotObject    = errors.New("expected a JSON object")
)

// object is a decoded JSON object whose fields are pulled out one at a time,
// so every entity spells out which fields it requires.
type object struct {
	typ    string
	fields map[string]json.RawMessage
}

func decodeObject(typ string, data []byte) (object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return object{}, &DecodeError{Type: typ, Err: err}
	}
	if fields == nil {
		return object{}, &DecodeError{Type: typ, Err: errNotObject}
	}
	return object{typ: typ, fields: fields}, nil
}

func (o object) required(key string, dst any) error {
	raw, ok := o.fields[key]
	if !ok {
		return &DecodeError{Type: o.typ, Field: key, Err: errMissingField}
	}
	if isNull(raw) {
		return &DecodeError{Type: o.typ, Field: key, Err: errNullField}
	}
	return o.decode(key, raw, dst)
}

// optional decodes key into dst when it is present and not null.
func (o object) optional(key string, dst any) (bool, error) {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return false, nil
	}
	return true, o.decode(key, raw, dst)
}

func (o object) decode(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Type: o.typ, Field: key, Err: err}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
