package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// screensCmd represents the screens command
var screensCmd = &cobra.Command{
	Use:   "screens [ISSUE-KEY]",
	Short: "Report which custom fields each screen accepts",
	Long: `Report, per custom field, whether the configured issue type's
create screen accepts it, and optionally whether a given ticket's edit
screen does. A field missing from the create screen is deferred to the
reconciliation pass during import; a field missing from both screens can
never be set through the API.

Examples:
  # Create-screen availability only
  jira-importer screens

  # Compare against an existing ticket's edit screen
  jira-importer screens PROJ-101
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScreens,
}

func init() {
	rootCmd.AddCommand(screensCmd)
}

func runScreens(cmd *cobra.Command, args []string) error {
	catalog, err := tracker.ListFields()
	if err != nil {
		return err
	}

	createMeta, err := tracker.GetCreateMeta(cfg.IssueType)
	if err != nil {
		return fmt.Errorf("cannot load creation metadata: %w", err)
	}

	var editMeta map[string]bool
	if len(args) == 1 {
		meta, err := tracker.GetEditMeta(args[0])
		if err != nil {
			return fmt.Errorf("cannot load edit metadata for %s: %w", args[0], err)
		}
		editMeta = make(map[string]bool, len(meta))
		for id := range meta {
			editMeta[id] = true
		}
	}

	type row struct {
		id, name         string
		onCreate, onEdit bool
	}
	var rows []row
	for _, f := range catalog {
		if !f.Custom {
			continue
		}
		_, onCreate := createMeta[f.ID]
		_, onEdit := editMeta[f.ID]
		rows = append(rows, row{id: f.ID, name: f.Name, onCreate: onCreate, onEdit: onEdit})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}

	if editMeta != nil {
		fmt.Printf("%-30s %-22s %-7s %s\n", "NAME", "ID", "CREATE", "EDIT")
		for _, r := range rows {
			fmt.Printf("%-30s %-22s %-7s %s\n", r.name, r.id, mark(r.onCreate), mark(r.onEdit))
		}
	} else {
		fmt.Printf("%-30s %-22s %s\n", "NAME", "ID", "CREATE")
		for _, r := range rows {
			fmt.Printf("%-30s %-22s %s\n", r.name, r.id, mark(r.onCreate))
		}
	}

	var available int
	for _, r := range rows {
		if r.onCreate {
			available++
		}
	}
	fmt.Printf("\n%d of %d custom field(s) on the '%s' create screen\n", available, len(rows), cfg.IssueType)

	return nil
}
