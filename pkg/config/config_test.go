package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
domain: example.atlassian.net
email: importer@example.com
api_token: secret
project_key: PROJ
issue_type: Incidencia
protected_fields:
  - Categoria
priority_names:
  Alta: Highest
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Domain != "example.atlassian.net" || cfg.ProjectKey != "PROJ" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.IsProtected("categoria") {
		t.Error("protected list should match case-insensitively")
	}
	if cfg.PriorityNames["Alta"] != "Highest" {
		t.Errorf("priority map not loaded: %#v", cfg.PriorityNames)
	}
}

func TestLoadAppliesPolicyDefaults(t *testing.T) {
	path := writeConfig(t, `
domain: example.atlassian.net
email: importer@example.com
api_token: secret
project_key: PROJ
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IssueType != "Incidencia" {
		t.Errorf("default issue type not applied: %q", cfg.IssueType)
	}
	if !cfg.IsFragile("Team") || !cfg.IsFragile("Sprint asociado") {
		t.Errorf("default fragile list missing: %#v", cfg.FragileFields)
	}
	if cfg.RejectionKeywords["equipo"] != "Team" {
		t.Errorf("default keyword table missing: %#v", cfg.RejectionKeywords)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Domain:     "example.atlassian.net",
				Email:      "a@b.c",
				APIToken:   "t",
				ProjectKey: "PROJ",
			},
			expectErr: false,
		},
		{name: "missing domain", cfg: Config{Email: "a@b.c", APIToken: "t", ProjectKey: "PROJ"}, expectErr: true},
		{name: "missing email", cfg: Config{Domain: "d", APIToken: "t", ProjectKey: "PROJ"}, expectErr: true},
		{name: "missing token", cfg: Config{Domain: "d", Email: "a@b.c", ProjectKey: "PROJ"}, expectErr: true},
		{name: "missing project", cfg: Config{Domain: "d", Email: "a@b.c", APIToken: "t"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestGetBaseURL(t *testing.T) {
	cfg := Config{Domain: "example.atlassian.net"}
	if got := cfg.GetBaseURL(); got != "https://example.atlassian.net/rest/api/3" {
		t.Errorf("GetBaseURL = %q", got)
	}

	cfg.Domain = "example.atlassian.net/"
	if got := cfg.GetBaseURL(); got != "https://example.atlassian.net/rest/api/3" {
		t.Errorf("trailing slash not stripped: %q", got)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
