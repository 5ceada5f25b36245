package jira

import (
	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/config"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// Tracker bundles the per-concern services behind the single surface the
// importer engine depends on. All calls are scoped to the configured project.
type Tracker struct {
	projectKey string

	Fields   *FieldService
	Metadata *MetadataService
	Issues   *IssueService
	Users    *UserService
	Teams    *TeamService
	Sprints  *SprintService
	Search   *SearchService
}

// NewTracker creates a Tracker from config.
func NewTracker(cfg *config.Config) *Tracker {
	c := client.New(cfg)
	return &Tracker{
		projectKey: cfg.ProjectKey,
		Fields:     NewFieldService(c),
		Metadata:   NewMetadataService(c),
		Issues:     NewIssueService(c),
		Users:      NewUserService(c),
		Teams:      NewTeamService(c),
		Sprints:    NewSprintService(c),
		Search:     NewSearchService(c, cfg.ProjectKey),
	}
}

// ListFields returns the field catalog.
func (t *Tracker) ListFields() ([]models.Field, error) {
	return t.Fields.ListFields()
}

// GetCreateMeta returns create-screen metadata for the issue type.
func (t *Tracker) GetCreateMeta(issueType string) (map[string]models.FieldMeta, error) {
	return t.Metadata.GetCreateMeta(t.projectKey, issueType)
}

// GetEditMeta returns edit-screen metadata for an issue.
func (t *Tracker) GetEditMeta(issueKey string) (map[string]models.FieldMeta, error) {
	return t.Metadata.GetEditMeta(issueKey)
}

// CreateIssue creates an issue, returning its key or a structured rejection.
func (t *Tracker) CreateIssue(fields map[string]interface{}) (string, *models.Rejection, error) {
	return t.Issues.CreateIssue(fields)
}

// UpdateIssue updates an issue, returning a structured rejection when the
// tracker refuses some of the fields.
func (t *Tracker) UpdateIssue(key string, fields map[string]interface{}) (*models.Rejection, error) {
	return t.Issues.UpdateIssue(key, fields)
}

// SearchUsers queries the user directory.
func (t *Tracker) SearchUsers(query string) ([]models.User, error) {
	return t.Users.SearchUsers(query)
}

// ListTeams returns the team directory.
func (t *Tracker) ListTeams() ([]models.Team, error) {
	return t.Teams.ListTeams()
}

// FindIssueByExactTitle returns the key of an existing issue with the exact
// title, or "" when none exists.
func (t *Tracker) FindIssueByExactTitle(title string) (string, error) {
	return t.Search.FindIssueByExactTitle(title)
}

// GetIssueFields re-fetches selected field values of an issue.
func (t *Tracker) GetIssueFields(key string, fieldIDs []string) (map[string]interface{}, error) {
	return t.Issues.GetIssueFields(key, fieldIDs)
}
