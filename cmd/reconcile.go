package cmd

import (
	"fmt"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/importer"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/record"
	"github.com/spf13/cobra"
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <csv-file> [ISSUE-KEY...]",
	Short: "Re-apply missing field values to existing tickets",
	Long: `Re-apply field values from a CSV export to tickets that already
exist. Each record is matched to its ticket by exact title; records without
a matching ticket are skipped. When issue keys are given, only those
tickets are touched.

User and team references are resolved against the directories, so this is
the command to run after an import left assignee or team fields rejected.

Examples:
  # Reconcile every record in the export
  jira-importer reconcile incidencias.csv

  # Only these two tickets
  jira-importer reconcile incidencias.csv PROJ-101 PROJ-104
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	records, err := record.Load(args[0])
	if err != nil {
		return err
	}

	only := make(map[string]bool)
	for _, key := range args[1:] {
		only[strings.ToUpper(key)] = true
	}

	engine := importer.New(tracker, cfg)
	if err := engine.Prepare(); err != nil {
		return err
	}

	var touched, missing int
	for _, rec := range records {
		key, err := tracker.FindIssueByExactTitle(rec.Title)
		if err != nil {
			return fmt.Errorf("lookup failed for '%s': %w", rec.Title, err)
		}
		if key == "" {
			missing++
			if verbose {
				fmt.Printf("  no ticket titled '%s', skipping\n", rec.Title)
			}
			continue
		}
		if len(only) > 0 && !only[strings.ToUpper(key)] {
			continue
		}

		fmt.Printf("== %s: %s\n", key, rec.Title)
		result, err := engine.ReconcileIssue(key, rec)
		if err != nil {
			return err
		}
		for _, fr := range result.Fields {
			fmt.Printf("   %-10s %s", fr.Outcome, fr.Name)
			if fr.Message != "" {
				fmt.Printf(" (%s)", fr.Message)
			}
			fmt.Println()
		}
		touched++
	}

	fmt.Printf("✓ Reconciled %d ticket(s), %d record(s) without a ticket\n", touched, missing)
	return nil
}
