package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/importer"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/record"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	importDryRun bool
	noProgress   bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Create tickets from a CSV export",
	Long: `Create one ticket per CSV row in the configured project.

The first row is the header. Recognized mandatory columns (Spanish or
English): Titulo/Title, Descripción/Description, Prioridad/Priority.
Every other column is matched by name against the project's fields and
typed according to the field schema. Rows whose title already exists in
the project are skipped.

Examples:
  # Import a CSV export
  jira-importer import incidencias.csv

  # Parse and list the records without creating anything
  jira-importer import incidencias.csv --dry-run

  # Show the full per-record narrative instead of a progress bar
  jira-importer import incidencias.csv --verbose
`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse the CSV without creating tickets")
	importCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}

func runImport(cmd *cobra.Command, args []string) error {
	records, err := record.Load(args[0])
	if err != nil {
		return err
	}

	if importDryRun {
		fmt.Printf("✓ Parsed %d record(s):\n", len(records))
		for i, rec := range records {
			fmt.Printf("  %d. %s (%d extra field(s))\n", i+1, rec.Title, len(rec.Fields))
		}
		return nil
	}

	engine := importer.New(tracker, cfg)

	// The progress bar and the per-record narrative fight over the
	// terminal; verbose keeps the narrative, otherwise the bar wins.
	var bar *progressbar.ProgressBar
	if !noProgress && !verbose {
		engine.SetOutput(io.Discard)
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Creating tickets..."),
			progressbar.OptionSetWidth(15),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	if err := engine.Prepare(); err != nil {
		return err
	}

	results := make([]importer.RecordResult, 0, len(records))
	for i, rec := range records {
		if verbose || noProgress {
			fmt.Printf("== record %d/%d: %s\n", i+1, len(records), rec.Title)
		}
		results = append(results, engine.Process(rec))
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}

	printImportSummary(results)

	for _, r := range results {
		if r.Status == importer.StatusFailed {
			os.Exit(2)
		}
	}
	return nil
}

func printImportSummary(results []importer.RecordResult) {
	var created, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case importer.StatusCreated:
			created++
		case importer.StatusSkipped:
			skipped++
		case importer.StatusFailed:
			failed++
		}
	}

	fmt.Printf("✓ %d created, %d skipped, %d failed\n", created, skipped, failed)

	for _, r := range results {
		switch r.Status {
		case importer.StatusCreated:
			fmt.Printf("  %s: %s\n", r.Key, r.Title)
			for _, rm := range r.Removed {
				fmt.Printf("    - dropped %s: %s\n", rm.Name, rm.Reason)
			}
			if r.Reconciled != nil {
				for _, fr := range r.Reconciled.Fields {
					if fr.Outcome != importer.OutcomeConfirmed {
						fmt.Printf("    - %s %s: %s\n", fr.Outcome, fr.Name, fr.Message)
					}
				}
			}
			for name, ok := range r.Verified {
				if !ok {
					fmt.Printf("    - warning: %s did not stick\n", name)
				}
			}
		case importer.StatusSkipped:
			fmt.Printf("  %s: %s (already exists)\n", r.Key, r.Title)
		case importer.StatusFailed:
			fmt.Printf("  ✗ %s: %s\n", r.Title, r.Error)
		}
	}
}
