package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/spf13/cobra"
)

var groupsWithProperties bool

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Inspect contact properties",
}

var propertiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contact properties",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		props, err := client.GetProperties(cmd.Context())
		if err != nil {
			return fmt.Errorf("list properties: %w", err)
		}
		if flagJSON {
			return printJSON(props)
		}
		printPropertyTable(props)
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Inspect contact property groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contact property groups",
	Long: `List prints the portal's contact property groups.

Example:
  hubspot groups list
  hubspot groups list --properties --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		groups, err := client.GetGroups(cmd.Context(), groupsWithProperties)
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		if flagJSON {
			return printJSON(groups)
		}

		if len(groups) == 0 {
			fmt.Println("No groups found.")
			return nil
		}
		var sb strings.Builder
		w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDISPLAY NAME\tORDER\tPROPERTIES")
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", g.Name, g.DisplayName, g.DisplayOrder, len(g.Properties))
		}
		w.Flush()
		fmt.Print(sb.String())
		return nil
	},
}

func init() {
	groupsListCmd.Flags().BoolVar(&groupsWithProperties, "properties", false, "include each group's properties")

	propertiesCmd.AddCommand(propertiesListCmd)
	groupsCmd.AddCommand(groupsListCmd)
}

// printPropertyTable prints properties in a human-readable table format.
func printPropertyTable(props []hubspot.Property) {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUP\tTYPE\tFIELD\tOPTIONS")
	for _, p := range props {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.Name, p.GroupName, p.Type, p.FieldType, len(p.Options))
	}
	w.Flush()
	fmt.Print(sb.String())
}
