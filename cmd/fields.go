package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
	"github.com/spf13/cobra"
)

var (
	fieldsFilter     string
	fieldsCustomOnly bool
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields [name]",
	Short: "List the field catalog",
	Long: `List every field the tracker knows, with its id and schema type.
Useful for checking which CSV headers will match which fields, and what
id a rejection message refers to. With a name argument, show that one
field's details.

Examples:
  # All fields
  jira-importer fields

  # Custom fields whose name mentions "team"
  jira-importer fields --custom --filter team

  # One field by exact name
  jira-importer fields "Sprint asociado"
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&fieldsFilter, "filter", "", "only fields whose name contains this text")
	fieldsCmd.Flags().BoolVar(&fieldsCustomOnly, "custom", false, "only custom fields")
}

func runFields(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		f, err := tracker.Fields.GetFieldByName(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Name:   %s\n", f.Name)
		fmt.Printf("ID:     %s\n", f.ID)
		fmt.Printf("Type:   %s\n", f.Schema.Type)
		if f.Schema.Items != "" {
			fmt.Printf("Items:  %s\n", f.Schema.Items)
		}
		fmt.Printf("Custom: %v\n", f.Custom)
		return nil
	}

	catalog, err := tracker.ListFields()
	if err != nil {
		return err
	}

	filter := strings.ToLower(fieldsFilter)
	fields := make([]models.Field, 0, len(catalog))
	for _, f := range catalog {
		if fieldsCustomOnly && !f.Custom {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(f.Name), filter) {
			continue
		}
		fields = append(fields, f)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	fmt.Printf("%-22s %-30s %-12s %s\n", "ID", "NAME", "TYPE", "CUSTOM")
	for _, f := range fields {
		kind := f.Schema.Type
		if f.Schema.Items != "" {
			kind = fmt.Sprintf("%s[%s]", f.Schema.Type, f.Schema.Items)
		}
		custom := ""
		if f.Custom {
			custom = "yes"
		}
		fmt.Printf("%-22s %-30s %-12s %s\n", f.ID, f.Name, kind, custom)
	}
	fmt.Printf("\n%d field(s)\n", len(fields))

	return nil
}
