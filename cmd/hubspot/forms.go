package main

import (
	"fmt"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/spf13/cobra"
)

var (
	formHutk     string
	formIP       string
	formPageURL  string
	formPageName string
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List and submit forms",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the portal's forms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		forms, err := client.GetForms(cmd.Context())
		if err != nil {
			return fmt.Errorf("list forms: %w", err)
		}
		if flagJSON {
			return printJSON(forms)
		}
		for _, f := range forms {
			fmt.Printf("%s  %s\n", f.GUID, f.Name)
		}
		return nil
	},
}

var formsSubmitCmd = &cobra.Command{
	Use:   "submit <portal-id> <form-guid> <field=value>...",
	Short: "Submit a form",
	Long: `Submit sends field values to a form as a visitor would. Pass the
visitor's hubspotutk cookie with --hutk to tie the submission to their
browsing history. No token is needed.

Example:
  hubspot forms submit 62515 8a2b51c3-0b4d-4b8a-9f0e-3f3c2e1b0d9a email=jo@example.com \
    --hutk d6c1b3a5e8f14a3fa3d7b2e4 --page-url https://example.com/signup`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		portalID, err := hubspot.ParsePortalID(args[0])
		if err != nil {
			return fmt.Errorf("invalid portal id %q", args[0])
		}
		fields, err := parseAssignments(args[2:])
		if err != nil {
			return err
		}

		err = newAnonymousClient().SubmitForm(cmd.Context(), portalID, args[1], fields, hubspot.FormContext{
			UserToken: hubspot.UserToken(formHutk),
			IPAddress: formIP,
			PageURL:   formPageURL,
			PageName:  formPageName,
		})
		if err != nil {
			return fmt.Errorf("submit form: %w", err)
		}
		fmt.Printf("Submitted form %s\n", args[1])
		return nil
	},
}

func init() {
	formsSubmitCmd.Flags().StringVar(&formHutk, "hutk", "", "visitor's hubspotutk cookie value")
	formsSubmitCmd.Flags().StringVar(&formIP, "ip", "", "visitor's IP address")
	formsSubmitCmd.Flags().StringVar(&formPageURL, "page-url", "", "URL of the page the form was on")
	formsSubmitCmd.Flags().StringVar(&formPageName, "page-name", "", "title of the page the form was on")

	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsSubmitCmd)
}
