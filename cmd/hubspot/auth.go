package main

import (
	"fmt"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/spf13/cobra"
)

var authState string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the OAuth credential",
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the authorization URL",
	Long: `Print the page a HubSpot user visits to grant this app access.

Example:
  hubspot auth url --state 3f9a`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := hubspot.AuthorizeURL(cfg, authState)
		if err != nil {
			return err
		}
		fmt.Println(u)
		if !cfg.OfflineAccess() {
			fmt.Println(`Note: HUBSPOT_SCOPE has no "offline" scope, so no refresh token will be issued.`)
		}
		return nil
	},
}

var authExchangeCmd = &cobra.Command{
	Use:   "exchange <code>",
	Short: "Exchange an authorization code for a token",
	Long: `Exchange the code HubSpot sent to the redirect URI for a token and
store it in the token file.

Example:
  hubspot auth exchange 5771f587-2fe7-40e8-8784-042fb4bc2c31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAnonymousClient()
		auth, portalID, err := client.ExchangeCode(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("exchange code: %w", err)
		}
		return printAuth(auth, portalID)
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the stored token now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		auth, err := client.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh token: %w", err)
		}
		return printAuth(auth, client.PortalID())
	},
}

var authInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		info, err := client.TokenInfo(cmd.Context(), client.Auth().AccessToken)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(info)
		}
		fmt.Printf("Portal:  %s (%s)\n", info.HubID, info.HubDomain)
		fmt.Printf("User:    %s\n", info.User)
		fmt.Printf("Scopes:  %v\n", info.Scopes)
		fmt.Printf("Expires: in %ds\n", info.ExpiresIn)
		return nil
	},
}

func printAuth(auth hubspot.Auth, portalID hubspot.PortalID) error {
	if flagJSON {
		return printJSON(map[string]any{"portal_id": portalID, "expires_at": auth.ExpiresAt, "offline": auth.HasRefreshToken()})
	}
	fmt.Printf("Token for portal %s saved to %s\n", portalID, cfg.TokenFile)
	fmt.Printf("Expires at %s\n", auth.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	if !auth.HasRefreshToken() {
		fmt.Println("No refresh token was issued; run the authorization flow again once it expires.")
	}
	return nil
}

func init() {
	authURLCmd.Flags().StringVar(&authState, "state", "", "opaque value echoed back to the redirect URI")

	authCmd.AddCommand(authURLCmd)
	authCmd.AddCommand(authExchangeCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authInfoCmd)
}
