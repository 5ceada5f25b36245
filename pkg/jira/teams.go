package jira

import (
	"encoding/json"
	"fmt"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// TeamService handles team directory lookups
type TeamService struct {
	client *client.Client
}

// NewTeamService creates a new TeamService instance
func NewTeamService(c *client.Client) *TeamService {
	return &TeamService{client: c}
}

// ListTeams retrieves the team directory. Some instances return the list
// bare, others wrap it in a paginated envelope, so both shapes are decoded.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetQueryParam("maxResults", "100").
		SetError(&errorResp).
		Get("/team")

	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	body := resp.Body()

	var wrapped models.TeamsResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Values != nil {
		return wrapped.Values, nil
	}

	var teams []models.Team
	if err := json.Unmarshal(body, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode team directory: %w", err)
	}

	return teams, nil
}
