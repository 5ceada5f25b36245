package jira

import (
	"fmt"
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// FieldService handles field catalog operations
type FieldService struct {
	client *client.Client
}

// NewFieldService creates a new FieldService instance
func NewFieldService(client *client.Client) *FieldService {
	return &FieldService{
		client: client,
	}
}

// ListFields retrieves the full field catalog from Jira
func (s *FieldService) ListFields() ([]models.Field, error) {
	var fields []models.Field
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetResult(&fields).
		SetError(&errorResp).
		Get("/field")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fields: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return fields, nil
}

// GetFieldByName searches the catalog for a field by name (case-insensitive)
func (s *FieldService) GetFieldByName(name string) (*models.Field, error) {
	fields, err := s.ListFields()
	if err != nil {
		return nil, err
	}

	searchName := strings.ToLower(strings.TrimSpace(name))

	for _, field := range fields {
		if strings.ToLower(field.Name) == searchName {
			return &field, nil
		}
	}

	return nil, fmt.Errorf("field '%s' not found", name)
}

// formatErrorResponse formats a Jira error response for display
func formatErrorResponse(errResp *models.ErrorResponse) string {
	var messages []string

	if len(errResp.ErrorMessages) > 0 {
		messages = append(messages, strings.Join(errResp.ErrorMessages, "; "))
	}

	if len(errResp.Errors) > 0 {
		for field, msg := range errResp.Errors {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}

	if len(messages) == 0 {
		return "unknown error"
	}

	return strings.Join(messages, "; ")
}
