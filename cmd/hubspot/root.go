package main

import (
	"fmt"

	"github.com/natserract/hubspot/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flag values.
var (
	flagTokenFile string
	flagJSON      bool
	flagVerbose   bool
)

// Set by PersistentPreRunE for all subcommands.
var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hubspot",
	Short: "hubspot talks to the HubSpot contacts, properties and forms APIs",
	Long: `hubspot is a command line client for HubSpot.

Credentials come from the environment (or a .env file):
  HUBSPOT_CLIENT_ID, HUBSPOT_CLIENT_SECRET, HUBSPOT_REDIRECT_URI, HUBSPOT_SCOPE

Run "hubspot auth url" to start the OAuth flow, then "hubspot auth exchange"
with the code HubSpot redirects back with. The resulting token is stored in
the token file and refreshed automatically.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagVerbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction(zap.IncreaseLevel(zap.WarnLevel))
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagTokenFile != "" {
			cfg.TokenFile = flagTokenFile
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTokenFile, "token-file", "", "token file (default: $HUBSPOT_TOKEN_FILE or .hubspot-token.json)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(formsCmd)
}
