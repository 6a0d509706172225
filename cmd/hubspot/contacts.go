package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/spf13/cobra"
)

var (
	contactsCount  int
	contactsOffset int64
	contactsEmail  string
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Read and write contacts",
}

var contactsGetCmd = &cobra.Command{
	Use:   "get <vid|email>",
	Short: "Get a contact profile",
	Long: `Get prints a contact profile as returned by HubSpot. The argument is a
contact vid, or an email address if it contains "@".

Example:
  hubspot contacts get 3234574
  hubspot contacts get testingapis@hubspot.com`,
	Args: cobra.ExactArgs(1),
	RunE: runContactsGet,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of contacts",
	Long: `List prints one page of the portal's contacts. Pass the printed offset
to --offset to read the next page.

Example:
  hubspot contacts list --count 50
  hubspot contacts list --count 50 --offset 3234574`,
	Args: cobra.NoArgs,
	RunE: runContactsList,
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update <vid> <property=value>...",
	Short: "Update contact properties",
	Long: `Update writes property values to an existing contact. With --email the
contact is created if it does not exist and no vid is given.

Example:
  hubspot contacts update 3234574 favorite_color=teal lifecyclestage=lead
  hubspot contacts update --email jo@example.com firstname=Jo`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContactsUpdate,
}

func init() {
	contactsListCmd.Flags().IntVar(&contactsCount, "count", 20, "contacts per page")
	contactsListCmd.Flags().Int64Var(&contactsOffset, "offset", 0, "vid offset from the previous page")
	contactsUpdateCmd.Flags().StringVar(&contactsEmail, "email", "", "create or update the contact with this email")

	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsUpdateCmd)
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var contact hubspot.Contact
	if strings.Contains(args[0], "@") {
		contact, err = client.GetContactByEmail(cmd.Context(), args[0])
	} else {
		var id hubspot.ContactID
		id, err = hubspot.ParseContactID(args[0])
		if err != nil {
			return fmt.Errorf("invalid contact id %q", args[0])
		}
		contact, err = client.GetContact(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("get contact: %w", err)
	}

	return printJSON(contact)
}

func runContactsList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.GetContacts(cmd.Context(), contactsCount, hubspot.ContactID(contactsOffset))
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	if flagJSON {
		return printJSON(page)
	}

	if len(page.Contacts) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VID\tEMAIL\tFIRSTNAME\tLASTNAME")
	for _, c := range page.Contacts {
		id, _ := c.ID()
		email, _ := c.Property("email")
		first, _ := c.Property("firstname")
		last, _ := c.Property("lastname")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, email, first, last)
	}
	w.Flush()
	fmt.Print(sb.String())

	if page.HasMore {
		fmt.Printf("More contacts available: --offset %s\n", page.VidOffset)
	}
	return nil
}

func runContactsUpdate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if contactsEmail != "" {
		values, err := parseAssignments(args)
		if err != nil {
			return err
		}
		id, isNew, err := client.CreateOrUpdateContact(cmd.Context(), contactsEmail, hubspot.PropertyValues(values))
		if err != nil {
			return fmt.Errorf("create or update contact: %w", err)
		}
		if isNew {
			fmt.Printf("Created contact %s\n", id)
		} else {
			fmt.Printf("Updated contact %s\n", id)
		}
		return nil
	}

	id, err := hubspot.ParseContactID(args[0])
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no properties to update")
	}

	if err := client.UpdateContact(cmd.Context(), id, hubspot.PropertyValues(values)); err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	fmt.Printf("Updated contact %s\n", id)
	return nil
}
