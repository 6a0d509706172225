package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/natserract/hubspot/pkg/config"
	httpclient "github.com/natserract/hubspot/pkg/http"
	"go.uber.org/zap"
)

// TokenRequest is the form body of HubSpot's /oauth/v1/token endpoint.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenInfo describes an access token as reported by HubSpot.
type TokenInfo struct {
	Token     string   `json:"token"`
	User      string   `json:"user"`
	HubDomain string   `json:"hub_domain"`
	Scopes    []string `json:"scopes"`
	HubID     PortalID `json:"hub_id"`
	AppID     int64    `json:"app_id"`
	ExpiresIn int      `json:"expires_in"`
	UserID    int64    `json:"user_id"`
	TokenType string   `json:"token_type"`
}

// AuthorizeURL returns the page a user visits to grant the app access. state
// is echoed back to the redirect URI and may be empty.
func AuthorizeURL(cfg *config.Config, state string) (string, error) {
	u, err := url.Parse(cfg.AuthBaseURI + "/oauth/authorize")
	if err != nil {
		return "", &URLError{Input: cfg.AuthBaseURI, Err: err}
	}
	q := url.Values{}
	q.Set("client_id", ClientID(cfg.ClientID).String())
	q.Set("redirect_uri", cfg.RedirectURI)
	q.Set("scope", strings.Join(cfg.Scopes(), " "))
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExchangeCode trades an authorization code for a credential and makes it the
// client's current Auth. When the token response does not name the portal it
// is looked up through TokenInfo.
func (h *HubSpot) ExchangeCode(ctx context.Context, code string) (Auth, PortalID, error) {
	h.logger.Info("Exchanging authorization code")

	auth, portalID, err := h.requestToken(ctx, TokenRequest{
		GrantType:    "authorization_code",
		ClientID:     h.config.ClientID,
		ClientSecret: h.config.ClientSecret,
		RedirectURI:  h.config.RedirectURI,
		Code:         code,
	}, "")
	if err != nil {
		return Auth{}, 0, err
	}

	if portalID == 0 {
		info, err := h.TokenInfo(ctx, auth.AccessToken)
		if err != nil {
			return Auth{}, 0, err
		}
		portalID = info.HubID
	}

	h.store(auth, portalID)
	h.logger.Info("Successfully exchanged authorization code",
		zap.Stringer("portal_id", portalID),
		zap.Bool("offline", auth.HasRefreshToken()),
		zap.Time("expires_at", auth.ExpiresAt))

	return auth, portalID, nil
}

// Refresh trades the held refresh token for a new access token. Concurrent
// calls share a single request, which outlives the caller that started it.
func (h *HubSpot) Refresh(ctx context.Context) (Auth, error) {
	sharedCtx := context.WithoutCancel(ctx)
	v, err, shared := h.refreshes.Do("refresh", func() (any, error) {
		refreshToken := h.Auth().RefreshToken
		if refreshToken == "" {
			return Auth{}, ErrNotAuthenticated
		}

		auth, portalID, err := h.requestToken(sharedCtx, TokenRequest{
			GrantType:    "refresh_token",
			ClientID:     h.config.ClientID,
			ClientSecret: h.config.ClientSecret,
			RedirectURI:  h.config.RedirectURI,
			RefreshToken: refreshToken,
		}, refreshToken)
		if err != nil {
			return Auth{}, err
		}

		h.store(auth, portalID)
		h.logger.Info("Successfully refreshed access token",
			zap.Time("expires_at", auth.ExpiresAt))
		return auth, nil
	})
	if err != nil {
		h.logger.Error("Failed to refresh access token", zap.Error(err), zap.Bool("shared", shared))
		return Auth{}, err
	}
	return v.(Auth), nil
}

// requestToken posts req to the token endpoint. A non-empty refreshToken
// selects refresh-response parsing.
func (h *HubSpot) requestToken(ctx context.Context, req TokenRequest, refreshToken string) (Auth, PortalID, error) {
	endpoint, err := httpclient.BuildURL(h.config.APIBaseURI, nil, "oauth", "v1", "token")
	if err != nil {
		return Auth{}, 0, err
	}

	resp, err := h.httpClient.PostForm(ctx, endpoint, req)
	if err != nil {
		h.logger.Error("Token request failed", zap.Error(err), zap.String("grant_type", req.GrantType))
		return Auth{}, 0, fmt.Errorf("token request failed: %w", err)
	}

	// The clock is read once the response is in hand.
	now := h.now()
	if refreshToken != "" {
		return ParseRefreshResponse(resp.Body, refreshToken, now)
	}
	return ParseTokenResponse(resp.Body, now)
}

// TokenInfo looks up the metadata of accessToken, including its portal.
func (h *HubSpot) TokenInfo(ctx context.Context, accessToken string) (*TokenInfo, error) {
	endpoint, err := httpclient.BuildURL(h.config.APIBaseURI, nil, "oauth", "v1", "access-tokens", accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Get(ctx, endpoint, nil)
	if err != nil {
		h.logger.Error("Token info request failed", zap.Error(err))
		return nil, fmt.Errorf("token info request failed: %w", err)
	}

	var info TokenInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		h.logger.Error("Failed to parse token info response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse token info response: %w", err)
	}
	return &info, nil
}
