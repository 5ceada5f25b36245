package jira

import (
	"fmt"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// SearchService handles issue search operations
type SearchService struct {
	client     *client.Client
	projectKey string
}

// NewSearchService creates a new search service scoped to a project
func NewSearchService(c *client.Client, projectKey string) *SearchService {
	return &SearchService{client: c, projectKey: projectKey}
}

// SearchRequest represents a JQL search request
type SearchRequest struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt,omitempty"`
	MaxResults int      `json:"maxResults,omitempty"`
	Fields     []string `json:"fields,omitempty"`
}

// Search executes a JQL query and returns matching issues
func (s *SearchService) Search(jql string, maxResults int, fields []string) (*models.SearchResponse, error) {
	if jql == "" {
		return nil, fmt.Errorf("JQL query cannot be empty")
	}

	if maxResults <= 0 {
		maxResults = 50
	}

	if len(fields) == 0 {
		fields = []string{"summary"}
	}

	req := SearchRequest{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     fields,
	}

	var result models.SearchResponse
	var errorResp models.ErrorResponse

	resp, err := s.client.PostRequest().
		SetBody(req).
		SetResult(&result).
		SetError(&errorResp).
		Post("/search/jql")

	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return &result, nil
}

// FindIssueByExactTitle returns the key of an issue in the project whose
// summary equals the given title (case-insensitive, trimmed), or "" when no
// such issue exists. JQL's ~ operator matches loosely, so candidates are
// re-checked for verbatim equality here.
func (s *SearchService) FindIssueByExactTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil
	}

	jql := fmt.Sprintf(`project = %s AND summary ~ "%s"`, s.projectKey, escapeJQL(title))
	result, err := s.Search(jql, 20, []string{"summary"})
	if err != nil {
		return "", err
	}

	for _, issue := range result.Issues {
		summary, _ := issue.Fields["summary"].(string)
		if strings.EqualFold(strings.TrimSpace(summary), title) {
			return issue.Key, nil
		}
	}

	return "", nil
}

// escapeJQL escapes quotes and backslashes inside a JQL string literal.
func escapeJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
