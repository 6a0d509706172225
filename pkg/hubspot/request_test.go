package hubspot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatedURL(t *testing.T) {
	auth := NewAuthAt(time.Now(), "tok", "", 60)

	u, err := AuthenticatedURL(auth, "https://api.example.com", "v1", "contacts")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/contacts?access_token=tok", u.String())
}

func TestAuthenticatedURL_KeepsExistingQuery(t *testing.T) {
	auth := NewAuthAt(time.Now(), "a b&c", "", 60)

	u, err := AuthenticatedURL(auth, "https://api.example.com", "v1", "contacts?count=10")
	require.NoError(t, err)
	assert.Equal(t, "10", u.Query().Get("count"))
	assert.Equal(t, "a b&c", u.Query().Get("access_token"))
}

func TestAuthenticatedURL_Invalid(t *testing.T) {
	auth := NewAuthAt(time.Now(), "tok", "", 60)

	tests := map[string][]string{
		"relative":   {"v1", "contacts"},
		"bad escape": {"https://api.example.com", "%zz"},
		"no host":    {"https:", "v1"},
		"empty":      nil,
	}
	for name, segments := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := AuthenticatedURL(auth, segments...)
			var urlErr *URLError
			require.True(t, errors.As(err, &urlErr), "got %v", err)
		})
	}
}
