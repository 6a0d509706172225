package hubspot

import (
	"encoding/json"
	"strconv"
)

// ClientID is the OAuth client identifier of a HubSpot app.
type ClientID string

// PortalID identifies a HubSpot account (hub).
type PortalID int64

// ContactID is a contact's vid.
type ContactID int64

// UserToken is the hubspotutk cookie value that tracks a visitor. It is
// passed through untouched.
type UserToken string

func (id ClientID) String() string { return string(id) }

func (id *ClientID) UnmarshalJSON(data []byte) error {
	s, ok, err := decodeString("ClientID", data)
	if err != nil || !ok {
		return err
	}
	*id = ClientID(s)
	return nil
}

func (t UserToken) String() string { return string(t) }

func (t *UserToken) UnmarshalJSON(data []byte) error {
	s, ok, err := decodeString("UserToken", data)
	if err != nil || !ok {
		return err
	}
	*t = UserToken(s)
	return nil
}

func (id PortalID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id *PortalID) UnmarshalJSON(data []byte) error {
	n, ok, err := decodeInt("PortalID", data)
	if err != nil || !ok {
		return err
	}
	*id = PortalID(n)
	return nil
}

// ParsePortalID parses the decimal form produced by String.
func ParsePortalID(s string) (PortalID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: "PortalID", Err: err}
	}
	return PortalID(n), nil
}

func (id ContactID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id *ContactID) UnmarshalJSON(data []byte) error {
	n, ok, err := decodeInt("ContactID", data)
	if err != nil || !ok {
		return err
	}
	*id = ContactID(n)
	return nil
}

// ParseContactID parses the decimal form produced by String.
func ParseContactID(s string) (ContactID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: "ContactID", Err: err}
	}
	return ContactID(n), nil
}

// decodeString and decodeInt report ok=false for null, which leaves the
// target untouched. Required fields reject null before getting here.
func decodeString(typ string, data []byte) (string, bool, error) {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, &DecodeError{Type: typ, Err: err}
	}
	if s == nil {
		return "", false, nil
	}
	return *s, true, nil
}

func decodeInt(typ string, data []byte) (int64, bool, error) {
	var n *int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, false, &DecodeError{Type: typ, Err: err}
	}
	if n == nil {
		return 0, false, nil
	}
	return *n, true, nil
}
