package cmd

import (
	"fmt"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/importer"
	"github.com/spf13/cobra"
)

// assignCmd represents the assign command
var assignCmd = &cobra.Command{
	Use:   "assign <ISSUE-KEY> <name-or-email>",
	Short: "Resolve a person and set them as assignee",
	Long: `Resolve a display name or email against the user directory and set
the matched account as the ticket's assignee.

The lookup tries an exact match on name or email first, then a partial
match, then retries with a shortened query when the directory returns
nothing for the full one.

Examples:
  jira-importer assign PROJ-101 "Jorge Croquer"
  jira-importer assign PROJ-101 jorge@example.com
`,
	Args: cobra.ExactArgs(2),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	issueKey, query := args[0], args[1]

	engine := importer.New(tracker, cfg)
	accountID, err := engine.ResolveAccount(query)
	if err != nil {
		return fmt.Errorf("could not resolve '%s': %w", query, err)
	}

	rej, err := tracker.UpdateIssue(issueKey, map[string]interface{}{
		"assignee": map[string]interface{}{"accountId": accountID},
	})
	if err != nil {
		return err
	}
	if rej != nil {
		return fmt.Errorf("tracker refused the assignment: %s", rej.Summary())
	}

	fmt.Printf("✓ Assigned %s to %s\n", issueKey, query)
	return nil
}
