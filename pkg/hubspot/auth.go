package hubspot

import (
	"encoding/json"
	"time"
)

// Auth is a live HubSpot credential. RefreshToken is empty unless the
// "offline" scope was granted.
type Auth struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// NewAuth builds an Auth that expires expiresIn seconds from now. The clock
// is read here, not when the server produced the TTL.
func NewAuth(accessToken, refreshToken string, expiresIn int) Auth {
	return NewAuthAt(time.Now(), accessToken, refreshToken, expiresIn)
}

// NewAuthAt is NewAuth with an explicit issue instant.
func NewAuthAt(now time.Time, accessToken, refreshToken string, expiresIn int) Auth {
	return Auth{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(time.Duration(expiresIn) * time.Second),
	}
}

// Expired reports whether the access token is no longer usable at now.
func (a Auth) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

func (a Auth) HasRefreshToken() bool {
	return a.RefreshToken != ""
}

// MarshalJSON writes the persisted form. Note that expires_in holds the
// absolute expiry instant, not a TTL.
func (a Auth) MarshalJSON() ([]byte, error) {
	var refresh *string
	if a.RefreshToken != "" {
		refresh = &a.RefreshToken
	}
	return json.Marshal(struct {
		AccessToken  string    `json:"access_token"`
		RefreshToken *string   `json:"refresh_token"`
		ExpiresIn    time.Time `json:"expires_in"`
	}{a.AccessToken, refresh, a.ExpiresAt})
}

func (a *Auth) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject("Auth", data)
	if err != nil {
		return err
	}
	var out Auth
	if err := obj.required("access_token", &out.AccessToken); err != nil {
		return err
	}
	if _, err := obj.optional("refresh_token", &out.RefreshToken); err != nil {
		return err
	}
	if err := obj.required("expires_in", &out.ExpiresAt); err != nil {
		return err
	}
	*a = out
	return nil
}

// tokenResponse is what HubSpot's token endpoints return. portal_id comes
// from the legacy refresh endpoint, hub_id from the token-info endpoint.
type tokenResponse struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	PortalID     PortalID
}

func decodeTokenResponse(data []byte) (tokenResponse, error) {
	obj, err := decodeObject("TokenResponse", data)
	if err != nil {
		return tokenResponse{}, err
	}
	var out tokenResponse
	if err := obj.required("access_token", &out.AccessToken); err != nil {
		return tokenResponse{}, err
	}
	if err := obj.required("expires_in", &out.ExpiresIn); err != nil {
		return tokenResponse{}, err
	}
	if _, err := obj.optional("refresh_token", &out.RefreshToken); err != nil {
		return tokenResponse{}, err
	}
	found, err := obj.optional("portal_id", &out.PortalID)
	if err != nil {
		return tokenResponse{}, err
	}
	if !found {
		if _, err := obj.optional("hub_id", &out.PortalID); err != nil {
			return tokenResponse{}, err
		}
	}
	return out, nil
}

// ParseTokenResponse reads a token-issuing response body into an Auth whose
// expiry is now plus the reported TTL. The portal id is zero when the
// payload does not carry one.
func ParseTokenResponse(body []byte, now time.Time) (Auth, PortalID, error) {
	resp, err := decodeTokenResponse(body)
	if err != nil {
		return Auth{}, 0, err
	}
	return NewAuthAt(now, resp.AccessToken, resp.RefreshToken, resp.ExpiresIn), resp.PortalID, nil
}

// ParseRefreshResponse reads the response to a refresh. HubSpot does not
// always echo the refresh token back; when it is missing the one used for
// the refresh is kept, so the result always carries a refresh token.
func ParseRefreshResponse(body []byte, refreshToken string, now time.Time) (Auth, PortalID, error) {
	resp, err := decodeTokenResponse(body)
	if err != nil {
		return Auth{}, 0, err
	}
	if resp.RefreshToken == "" {
		resp.RefreshToken = refreshToken
	}
	return NewAuthAt(now, resp.AccessToken, resp.RefreshToken, resp.ExpiresIn), resp.PortalID, nil
}
