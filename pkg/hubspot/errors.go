package hubspot

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a JSON payload that does not have the structure an
// entity requires: a missing required field or a value of the wrong kind.
type DecodeError struct {
	Type  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("hubspot: decode %s: field %q: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("hubspot: decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// URLError reports path segments that did not join into a valid absolute URL.
type URLError struct {
	Input string
	Err   error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("hubspot: invalid url %q: %v", e.Input, e.Err)
}

func (e *URLError) Unwrap() error { return e.Err }

// ErrorMessage is HubSpot's standard error body.
type ErrorMessage struct {
	Message   string
	RequestID string
}

// UnmarshalJSON reads {"message","requestId"}. Any "status" field is ignored.
func (m *ErrorMessage) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("ErrorMessage", data)
	if err != nil {
		return err
	}
	var out ErrorMessage
	if err := obj.required("message", &out.Message); err != nil {
		return err
	}
	if err := obj.required("requestId", &out.RequestID); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON always writes "status":"error" ahead of the message fields.
func (m ErrorMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}{"error", m.Message, m.RequestID})
}

// APIError is returned when HubSpot answers with a non-success status and a
// well-formed error body.
type APIError struct {
	StatusCode int
	ErrorMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot: api error %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
}
