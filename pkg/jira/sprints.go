package jira

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// SprintService handles board and sprint lookups via the agile API
type SprintService struct {
	client *client.Client
}

// NewSprintService creates a new SprintService instance
func NewSprintService(c *client.Client) *SprintService {
	return &SprintService{client: c}
}

// agileURL rewrites an api/3 path to the agile/1.0 API on the same host.
func (s *SprintService) agileURL(path string) string {
	base := strings.Replace(s.client.BaseURL, "/rest/api/3", "/rest/agile/1.0", 1)
	return base + path
}

// ListBoards retrieves the boards of a project.
func (s *SprintService) ListBoards(projectKey string) ([]models.Board, error) {
	var response models.BoardsResponse
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetQueryParam("projectKeyOrId", projectKey).
		SetResult(&response).
		SetError(&errorResp).
		Get(s.agileURL("/board"))

	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return response.Values, nil
}

// ListSprints retrieves the sprints of a board.
func (s *SprintService) ListSprints(boardID int) ([]models.Sprint, error) {
	var response models.SprintsResponse
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetResult(&response).
		SetError(&errorResp).
		Get(s.agileURL("/board/" + strconv.Itoa(boardID) + "/sprint"))

	if err != nil {
		return nil, fmt.Errorf("failed to list sprints for board %d: %w", boardID, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return response.Values, nil
}

// ListProjectSprints collects the sprints of every board in the project.
func (s *SprintService) ListProjectSprints(projectKey string) ([]models.Sprint, error) {
	boards, err := s.ListBoards(projectKey)
	if err != nil {
		return nil, err
	}

	var sprints []models.Sprint
	for _, board := range boards {
		boardSprints, err := s.ListSprints(board.ID)
		if err != nil {
			// Kanban boards have no sprint endpoint; skip them.
			continue
		}
		sprints = append(sprints, boardSprints...)
	}

	return sprints, nil
}
