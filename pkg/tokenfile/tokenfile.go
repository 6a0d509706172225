// Package tokenfile persists a HubSpot credential to a local JSON file so
// command line tools can reuse it between runs.
package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natserract/hubspot/pkg/hubspot"
)

// ErrNotFound is returned by Load when no token file exists yet.
var ErrNotFound = errors.New("token file not found")

// Token is the file's content.
type Token struct {
	Auth     hubspot.Auth     `json:"auth"`
	PortalID hubspot.PortalID `json:"portal_id"`
}

// Load reads the token stored at path.
func Load(path string) (*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return &token, nil
}

// Save writes the token to path, replacing any previous file. The file is
// readable by the owner only.
func Save(path string, auth hubspot.Auth, portalID hubspot.PortalID) error {
	data, err := json.MarshalIndent(Token{Auth: auth, PortalID: portalID}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".hubspot-token-*")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set token file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Persist returns a refresh hook that saves every new credential to path.
// Failures are reported through onError, which may be nil.
func Persist(path string, onError func(error)) func(hubspot.Auth, hubspot.PortalID) {
	return func(auth hubspot.Auth, portalID hubspot.PortalID) {
		if err := Save(path, auth, portalID); err != nil && onError != nil {
			onError(err)
		}
	}
}
