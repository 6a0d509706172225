package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/natserract/hubspot/pkg/tokenfile"
	"go.uber.org/zap"
)

// newClient builds a client from the stored token. Every refreshed token is
// written back to the token file.
func newClient() (*hubspot.HubSpot, error) {
	token, err := tokenfile.Load(cfg.TokenFile)
	if err != nil {
		if errors.Is(err, tokenfile.ErrNotFound) {
			return nil, fmt.Errorf("no token in %s: run \"hubspot auth exchange\" first", cfg.TokenFile)
		}
		return nil, err
	}

	client := hubspot.NewHubSpotWithLogger(cfg, token.Auth, logger)
	client.SetAuth(token.Auth, token.PortalID)
	client.OnRefresh(persistToken())
	return client, nil
}

// newAnonymousClient builds a client with no credential, for the OAuth
// exchange and public form submissions.
func newAnonymousClient() *hubspot.HubSpot {
	client := hubspot.NewHubSpotWithLogger(cfg, hubspot.Auth{}, logger)
	client.OnRefresh(persistToken())
	return client
}

func persistToken() func(hubspot.Auth, hubspot.PortalID) {
	return tokenfile.Persist(cfg.TokenFile, func(err error) {
		logger.Error("Failed to save token", zap.String("path", cfg.TokenFile), zap.Error(err))
	})
}

// parseAssignments turns name=value arguments into a map. A value may itself
// contain "=".
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (want name=value)", arg)
		}
		out[name] = value
	}
	return out, nil
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
