package http

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// redactedParams lists query parameters whose values must not reach logs.
var redactedParams = []string{"access_token", "refresh_token", "client_secret", "hapikey"}

// redactedPathPrefixes lists path segments followed by a credential.
var redactedPathPrefixes = []string{"access-tokens", "refresh-tokens"}

// BuildURL appends the path-escaped segments to baseURL's path and sets the
// query. A segment may contain '/' or '%' and still stays a single segment.
func BuildURL(baseURL string, queryParams map[string]string, segments ...string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	path := strings.TrimSuffix(parsedURL.Path, "/")
	rawPath := strings.TrimSuffix(parsedURL.EscapedPath(), "/")
	for _, seg := range segments {
		path += "/" + seg
		rawPath += "/" + url.PathEscape(seg)
	}
	parsedURL.Path = path
	parsedURL.RawPath = rawPath

	q := url.Values{}
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}

// RedactURL replaces credentials in query values and token paths with
// "REDACTED". Unparseable input is returned without its query string.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '?'); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}

	q := u.Query()
	changed := false
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}

	segments := strings.Split(u.Path, "/")
	for i := 0; i+1 < len(segments); i++ {
		if slices.Contains(redactedPathPrefixes, segments[i]) && segments[i+1] != "" {
			segments[i+1] = "REDACTED"
			u.Path = strings.Join(segments, "/")
			u.RawPath = ""
		}
	}
	return u.String()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
