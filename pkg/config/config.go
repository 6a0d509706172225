package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURI   = "https://api.hubapi.com"
	DefaultAuthBaseURI  = "https://app.hubspot.com"
	DefaultFormsBaseURI = "https://forms.hubspot.com"
)

type Config struct {
	APIBaseURI   string
	AuthBaseURI  string
	FormsBaseURI string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	TokenFile    string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURI:   getEnv("HUBSPOT_API_BASE_URI", DefaultAPIBaseURI),
		AuthBaseURI:  getEnv("HUBSPOT_AUTH_BASE_URI", DefaultAuthBaseURI),
		FormsBaseURI: getEnv("HUBSPOT_FORMS_BASE_URI", DefaultFormsBaseURI),
		ClientID:     os.Getenv("HUBSPOT_CLIENT_ID"),
		ClientSecret: os.Getenv("HUBSPOT_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("HUBSPOT_REDIRECT_URI"),
		Scope:        os.Getenv("HUBSPOT_SCOPE"),
		TokenFile:    getEnv("HUBSPOT_TOKEN_FILE", ".hubspot-token.json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("HUBSPOT_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("HUBSPOT_CLIENT_SECRET is required")
	}
	if c.RedirectURI == "" {
		return fmt.Errorf("HUBSPOT_REDIRECT_URI is required")
	}
	if c.Scope == "" {
		return fmt.Errorf("HUBSPOT_SCOPE is required")
	}
	return nil
}

// Scopes splits Scope on spaces or commas.
func (c *Config) Scopes() []string {
	return strings.FieldsFunc(c.Scope, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

// OfflineAccess reports whether the "offline" scope is requested, which is
// what makes HubSpot issue a refresh token.
func (c *Config) OfflineAccess() bool {
	for _, s := range c.Scopes() {
		if s == "offline" {
			return true
		}
	}
	return false
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimRight(value, "/")
	}
	return defaultValue
}
