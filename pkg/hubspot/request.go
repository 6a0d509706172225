package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	httpclient "github.com/natserract/hubspot/pkg/http"
	"go.uber.org/zap"
)

var errNotAbsolute = errors.New("not an absolute url")

// AuthenticatedURL joins segments with "/" and attaches the access token as
// the access_token query parameter. The first segment is normally the API
// base, e.g. AuthenticatedURL(auth, "https://api.hubapi.com", "contacts", "v1", "lists").
func AuthenticatedURL(auth Auth, segments ...string) (*url.URL, error) {
	joined := strings.Join(segments, "/")
	u, err := url.Parse(joined)
	if err != nil {
		return nil, &URLError{Input: joined, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &URLError{Input: joined, Err: errNotAbsolute}
	}

	q := u.Query()
	q.Set("access_token", auth.AccessToken)
	u.RawQuery = q.Encode()
	return u, nil
}

// call is the one place endpoint methods go through: it stamps the current
// access token on the URL, sends body as JSON, and decodes a 2xx response
// into out (if non-nil). Error responses become *APIError when HubSpot sent
// its error envelope.
func (h *HubSpot) call(ctx context.Context, method string, query url.Values, body, out any, segments ...string) error {
	auth, err := h.currentAuth(ctx)
	if err != nil {
		return err
	}

	u, err := AuthenticatedURL(auth, append([]string{h.config.APIBaseURI}, segments...)...)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	resp, err := h.httpClient.Do(httpclient.RequestOptions{
		Method:     method,
		URL:        u.String(),
		Body:       body,
		Context:    ctx,
		MaxRetries: h.maxRetries,
	})
	if err != nil {
		return h.apiError(err)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		h.logger.Error("Failed to parse response",
			zap.String("method", method),
			zap.String("path", strings.Join(segments, "/")),
			zap.Error(err))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// apiError turns a status error carrying HubSpot's error body into *APIError.
// Other errors are returned wrapped.
func (h *HubSpot) apiError(err error) error {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("hubspot request failed: %w", err)
	}

	var msg ErrorMessage
	if decodeErr := json.Unmarshal(statusErr.Body, &msg); decodeErr != nil {
		h.logger.Debug("Error response is not an error envelope", zap.Error(decodeErr))
		return fmt.Errorf("hubspot request failed: %w", err)
	}
	return &APIError{StatusCode: statusErr.StatusCode, ErrorMessage: msg}
}
