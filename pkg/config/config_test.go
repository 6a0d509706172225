package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HUBSPOT_CLIENT_ID", "client-123")
	t.Setenv("HUBSPOT_CLIENT_SECRET", "secret")
	t.Setenv("HUBSPOT_REDIRECT_URI", "https://example.com/callback")
	t.Setenv("HUBSPOT_SCOPE", "contacts offline")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HUBSPOT_API_BASE_URI", "")
	t.Setenv("HUBSPOT_AUTH_BASE_URI", "")
	t.Setenv("HUBSPOT_FORMS_BASE_URI", "")
	t.Setenv("HUBSPOT_TOKEN_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURI, cfg.APIBaseURI)
	assert.Equal(t, DefaultAuthBaseURI, cfg.AuthBaseURI)
	assert.Equal(t, DefaultFormsBaseURI, cfg.FormsBaseURI)
	assert.Equal(t, ".hubspot-token.json", cfg.TokenFile)
	assert.Equal(t, "client-123", cfg.ClientID)
}

func TestLoad_OverridesTrimTrailingSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HUBSPOT_API_BASE_URI", "http://localhost:8080/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURI)
}

func TestLoad_MissingClientID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HUBSPOT_CLIENT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HUBSPOT_CLIENT_ID")
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{ClientID: "a", RedirectURI: "r", Scope: "s"}, "HUBSPOT_CLIENT_SECRET"},
		{"missing redirect", Config{ClientID: "a", ClientSecret: "b", Scope: "s"}, "HUBSPOT_REDIRECT_URI"},
		{"missing scope", Config{ClientID: "a", ClientSecret: "b", RedirectURI: "r"}, "HUBSPOT_SCOPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScopes_AndOfflineAccess(t *testing.T) {
	cfg := &Config{Scope: "contacts, forms offline"}
	assert.Equal(t, []string{"contacts", "forms", "offline"}, cfg.Scopes())
	assert.True(t, cfg.OfflineAccess())

	cfg.Scope = "contacts"
	assert.False(t, cfg.OfflineAccess())
}
