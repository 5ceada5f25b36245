package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// teamsCmd represents the teams command
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the team directory",
	Long: `List the teams the tracker knows, with the ids the team field
expects. Put the id in the CSV when the name lookup keeps failing.`,
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	teams, err := tracker.ListTeams()
	if err != nil {
		return err
	}

	if len(teams) == 0 {
		fmt.Println("No teams found (the team directory may not be enabled on this site)")
		return nil
	}

	fmt.Printf("%-38s %s\n", "ID", "NAME")
	for _, team := range teams {
		id := team.ID
		if id == "" {
			id = team.TeamID
		}
		fmt.Printf("%-38s %s\n", id, team.Name)
	}
	fmt.Printf("\n%d team(s)\n", len(teams))

	return nil
}
