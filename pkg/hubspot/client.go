// Package hubspot provides a client for HubSpot's contacts, properties and
// forms APIs.
//
// The package is built around three things:
//   - Auth, the OAuth credential, and the parsers that build it from
//     HubSpot's token responses;
//   - hand-written JSON codecs for HubSpot's resources. Contacts are kept
//     schemaless, property and field types accept values HubSpot may add
//     later, and groups tolerate a missing property list;
//   - AuthenticatedURL, which stamps the access token on a request URL.
//
// HubSpot is the client that ties these to the HTTP collaborator in pkg/http.
// It keeps the current Auth, refreshes it when it expires, and reports every
// new Auth through the refresh hook. Persisting tokens is left to callers.
package hubspot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/natserract/hubspot/pkg/config"
	httpclient "github.com/natserract/hubspot/pkg/http"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// tokenExpirySkew refreshes tokens slightly before HubSpot would reject them.
const tokenExpirySkew = 30 * time.Second

// ErrNotAuthenticated is returned when no usable token is held and none can be
// obtained by refreshing.
var ErrNotAuthenticated = errors.New("hubspot: not authenticated")

// HubSpot is the main client for interacting with the HubSpot API
type HubSpot struct {
	config     *config.Config
	httpClient *httpclient.Client
	tokenCache *tokenCache
	refreshes  singleflight.Group
	onRefresh  func(Auth, PortalID)
	now        func() time.Time
	maxRetries int
	logger     *zap.Logger
}

// tokenCache holds the current credential with thread-safe access
type tokenCache struct {
	mu       sync.RWMutex
	auth     Auth
	portalID PortalID
}

// NewHubSpot creates a new HubSpot client with default production logger
func NewHubSpot(cfg *config.Config, auth Auth) *HubSpot {
	logger, _ := zap.NewProduction()
	return NewHubSpotWithLogger(cfg, auth, logger)
}

// NewHubSpotWithLogger creates a new HubSpot client with a custom logger
func NewHubSpotWithLogger(cfg *config.Config, auth Auth, logger *zap.Logger) *HubSpot {
	return NewHubSpotWithHTTPClient(cfg, auth, httpclient.NewClientWithLogger(logger), logger)
}

// NewHubSpotWithHTTPClient creates a client that sends requests through httpClient
func NewHubSpotWithHTTPClient(cfg *config.Config, auth Auth, httpClient *httpclient.Client, logger *zap.Logger) *HubSpot {
	return &HubSpot{
		config:     cfg,
		httpClient: httpClient,
		tokenCache: &tokenCache{auth: auth},
		now:        time.Now,
		maxRetries: 3,
		logger:     logger,
	}
}

// OnRefresh registers fn to be called with every Auth the client obtains,
// from a code exchange or a refresh. Callers use it to persist tokens.
func (h *HubSpot) OnRefresh(fn func(Auth, PortalID)) {
	h.onRefresh = fn
}

// Auth returns the credential currently held.
func (h *HubSpot) Auth() Auth {
	h.tokenCache.mu.RLock()
	defer h.tokenCache.mu.RUnlock()
	return h.tokenCache.auth
}

// PortalID returns the portal the current credential belongs to, if known.
func (h *HubSpot) PortalID() PortalID {
	h.tokenCache.mu.RLock()
	defer h.tokenCache.mu.RUnlock()
	return h.tokenCache.portalID
}

// SetAuth replaces the held credential.
func (h *HubSpot) SetAuth(auth Auth, portalID PortalID) {
	h.tokenCache.mu.Lock()
	h.tokenCache.auth = auth
	if portalID != 0 {
		h.tokenCache.portalID = portalID
	}
	h.tokenCache.mu.Unlock()
}

func (h *HubSpot) store(auth Auth, portalID PortalID) {
	h.SetAuth(auth, portalID)
	if h.onRefresh != nil {
		h.onRefresh(auth, h.PortalID())
	}
}

// currentAuth returns a credential that is valid for at least
// tokenExpirySkew, refreshing first if needed.
func (h *HubSpot) currentAuth(ctx context.Context) (Auth, error) {
	h.tokenCache.mu.RLock()
	auth := h.tokenCache.auth
	h.tokenCache.mu.RUnlock()

	if auth.AccessToken != "" && !auth.Expired(h.now().Add(tokenExpirySkew)) {
		return auth, nil
	}
	if !auth.HasRefreshToken() {
		h.logger.Warn("Access token expired and no refresh token is held")
		return Auth{}, ErrNotAuthenticated
	}

	h.logger.Info("Access token expired or not available, refreshing")
	return h.Refresh(ctx)
}
