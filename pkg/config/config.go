package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the importer configuration
type Config struct {
	Domain     string `yaml:"domain"`      // e.g., "yourcompany.atlassian.net"
	Email      string `yaml:"email"`       // User email for API token
	APIToken   string `yaml:"api_token"`   // Jira API token
	ProjectKey string `yaml:"project_key"` // Target project key
	IssueType  string `yaml:"issue_type"`  // Issue type name for created tickets

	// ProtectedFields are display names of fields the operator deems
	// essential. The degradation loop only drops them when the rejection
	// names their exact field id or their coerced value fails its own
	// structural check.
	ProtectedFields []string `yaml:"protected_fields,omitempty"`

	// FragileFields are display names of fields that are dropped from the
	// first creation attempt when their coerced value cannot be confirmed
	// as structurally valid ahead of submission.
	FragileFields []string `yaml:"fragile_fields,omitempty"`

	// RejectionKeywords maps a lowercase substring of a general (non
	// field-scoped) rejection message to the display name of the field it
	// likely refers to. Best-effort only.
	RejectionKeywords map[string]string `yaml:"rejection_keywords,omitempty"`

	// PriorityNames translates source priority labels to the tracker's
	// priority names before coercion (e.g., "Alta" -> "Highest").
	PriorityNames map[string]string `yaml:"priority_names,omitempty"`
}

const (
	// ConfigDirName is the name of the config directory
	ConfigDirName = ".jira-importer"
	// ConfigFileName is the name of the config file
	ConfigFileName = "config.yaml"
	// ConfigFilePerms is the file permission for the config file (read/write for owner only)
	ConfigFilePerms = 0600
	// ConfigDirPerms is the directory permission for the config directory
	ConfigDirPerms = 0700
)

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName, ConfigFileName), nil
}

// GetConfigDir returns the full path to the config directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName), nil
}

// Load reads the config file from the default location and returns a Config struct
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(configPath)
}

// LoadFromPath reads the config file from a specific path and returns a Config struct
func LoadFromPath(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s. Run 'jira-importer configure' to set up", configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

// Save writes the config to the config file
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, ConfigDirPerms); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, ConfigFilePerms); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the config has all required fields
func (c *Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.APIToken == "" {
		return fmt.Errorf("api_token is required")
	}
	if c.ProjectKey == "" {
		return fmt.Errorf("project_key is required")
	}
	return nil
}

// applyDefaults fills in policy tables the config file omits. The defaults
// mirror the field set the importer was originally operated against.
func (c *Config) applyDefaults() {
	if c.IssueType == "" {
		c.IssueType = "Incidencia"
	}
	if c.FragileFields == nil {
		c.FragileFields = []string{"Team", "Sprint asociado"}
	}
	if c.ProtectedFields == nil {
		c.ProtectedFields = []string{"Desarrollador asignado", "Prioridad", "Categoria"}
	}
	if c.RejectionKeywords == nil {
		c.RejectionKeywords = map[string]string{
			"team":     "Team",
			"equipo":   "Team",
			"sprint":   "Sprint asociado",
			"assignee": "Desarrollador asignado",
		}
	}
}

// IsProtected reports whether a field display name is in the protected list
// (case-insensitive).
func (c *Config) IsProtected(name string) bool {
	return containsFold(c.ProtectedFields, name)
}

// IsFragile reports whether a field display name is in the fragile list
// (case-insensitive).
func (c *Config) IsFragile(name string) bool {
	return containsFold(c.FragileFields, name)
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// GetBaseURL returns the full Jira API base URL
func (c *Config) GetBaseURL() string {
	return fmt.Sprintf("https://%s/rest/api/3", strings.TrimSuffix(c.Domain, "/"))
}
