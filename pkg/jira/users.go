package jira

import (
	"fmt"
	"strconv"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// UserService handles user directory lookups
type UserService struct {
	client *client.Client
}

// NewUserService creates a new UserService instance
func NewUserService(c *client.Client) *UserService {
	return &UserService{client: c}
}

// SearchUsers queries the user directory. Returns up to maxResults matches
// in the directory's own ranking order.
func (s *UserService) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetQueryParams(map[string]string{
			"query":      query,
			"maxResults": strconv.Itoa(10),
		}).
		SetResult(&users).
		SetError(&errorResp).
		Get("/user/search")

	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return users, nil
}
