package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/config"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/jira"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Global variables
	cfg     *config.Config
	tracker *jira.Tracker
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jira-importer",
	Short: "Import incident tickets from CSV exports into Jira Cloud",
	Long: `jira-importer reads incident records from a CSV export, types each
column against the target project's field schema, and creates the tickets.
When the tracker rejects individual fields, the importer retries with a
reduced field set and reconciles the leftovers afterwards.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without credentials
		switch cmd.Name() {
		case "configure", "version", "help", "completion":
			return nil
		}

		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFromPath(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w\nRun 'jira-importer configure' to set up your credentials", err)
		}

		tracker = jira.NewTracker(cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Exit codes:
//   - 0: Success
//   - 1: Authentication failure
//   - 2: Validation error
//   - 3: API error
//   - 4: Configuration error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type
func getExitCode(err error) int {
	msg := strings.ToLower(err.Error())

	if containsAny(msg, "authentication", "auth", "credentials", "unauthorized", "401") {
		return 1
	}
	if containsAny(msg, "validation", "invalid", "required field", "400") {
		return 2
	}
	if containsAny(msg, "api error", "500", "502", "503", "504") {
		return 3
	}
	if containsAny(msg, "config", "configuration") {
		return 4
	}

	return 1
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jira-importer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
