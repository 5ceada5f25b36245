package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/config"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/jira"
	"github.com/spf13/cobra"
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure importer credentials and target project",
	Long: `Interactive setup wizard for the importer configuration.
You will need:
- Your Jira domain (e.g., yourcompany.atlassian.net)
- Your email address
- An API token (create one at https://id.atlassian.com/manage/api-tokens)
- The key of the project the tickets go into`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Importer Configuration ===")
	fmt.Println()

	domain, err := prompt(reader, "Jira domain (e.g., yourcompany.atlassian.net): ", true)
	if err != nil {
		return err
	}

	email, err := prompt(reader, "Email address: ", true)
	if err != nil {
		return err
	}

	fmt.Println("API token (create one at https://id.atlassian.com/manage/api-tokens):")
	apiToken, err := prompt(reader, "> ", true)
	if err != nil {
		return err
	}

	projectKey, err := prompt(reader, "Target project key: ", true)
	if err != nil {
		return err
	}

	issueType, err := prompt(reader, "Issue type for created tickets [Incidencia]: ", false)
	if err != nil {
		return err
	}

	newCfg := &config.Config{
		Domain:     domain,
		Email:      email,
		APIToken:   apiToken,
		ProjectKey: strings.ToUpper(projectKey),
		IssueType:  issueType,
	}

	// Validate credentials before saving by hitting the field catalog,
	// the cheapest authenticated endpoint the importer needs anyway.
	fmt.Println()
	fmt.Println("Validating credentials...")
	if _, err := jira.NewTracker(newCfg).ListFields(); err != nil {
		return fmt.Errorf("credential validation failed: %w", err)
	}
	fmt.Println("✓ Credentials accepted")
	fmt.Println()

	if err := newCfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	fmt.Printf("✓ Configuration saved to: %s\n", configPath)
	fmt.Println()
	fmt.Println("You're all set! Try 'jira-importer fields' to inspect the project schema.")

	return nil
}

func prompt(reader *bufio.Reader, label string, required bool) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if required && line == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	return line, nil
}
