package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sprintsState string

// sprintsCmd represents the sprints command
var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List sprints of the project's boards",
	Long: `List the sprints reachable from the configured project's boards.
Boards without sprint support (Kanban) are skipped.

Examples:
  jira-importer sprints
  jira-importer sprints --state active
`,
	RunE: runSprints,
}

func init() {
	rootCmd.AddCommand(sprintsCmd)

	sprintsCmd.Flags().StringVar(&sprintsState, "state", "", "only sprints in this state (active, future, closed)")
}

func runSprints(cmd *cobra.Command, args []string) error {
	sprints, err := tracker.Sprints.ListProjectSprints(cfg.ProjectKey)
	if err != nil {
		return err
	}

	fmt.Printf("%-8s %-10s %s\n", "ID", "STATE", "NAME")
	var shown int
	for _, sprint := range sprints {
		if sprintsState != "" && sprint.State != sprintsState {
			continue
		}
		fmt.Printf("%-8d %-10s %s\n", sprint.ID, sprint.State, sprint.Name)
		shown++
	}
	fmt.Printf("\n%d sprint(s)\n", shown)

	return nil
}
