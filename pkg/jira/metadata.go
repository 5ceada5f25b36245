package jira

import (
	"fmt"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// MetadataService fetches per-screen field metadata. The create screen and
// the edit screen of the same issue type can expose different field sets and
// different allowed values, so both endpoints are wrapped here.
type MetadataService struct {
	client *client.Client
}

// NewMetadataService creates a new MetadataService
func NewMetadataService(c *client.Client) *MetadataService {
	return &MetadataService{client: c}
}

// GetCreateMeta fetches create-screen metadata for a project and issue type.
// Returns the fieldId -> constraints map for the requested issue type.
func (s *MetadataService) GetCreateMeta(projectKey, issueType string) (map[string]models.FieldMeta, error) {
	var response models.CreateMetaResponse

	resp, err := s.client.GetRequest().
		SetQueryParams(map[string]string{
			"projectKeys":    projectKey,
			"issuetypeNames": issueType,
			"expand":         "projects.issuetypes.fields",
		}).
		SetResult(&response).
		Get("/issue/createmeta")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch create metadata: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch create metadata: HTTP %d", resp.StatusCode())
	}

	if len(response.Projects) == 0 {
		return nil, fmt.Errorf("project '%s' not found or you don't have access", projectKey)
	}

	project := response.Projects[0]
	for _, it := range project.IssueTypes {
		if it.Name == issueType {
			return it.Fields, nil
		}
	}

	if len(project.IssueTypes) == 0 {
		return nil, fmt.Errorf("issue type '%s' not found in project '%s'", issueType, projectKey)
	}

	// The endpoint was filtered by issue type name; trust the first entry
	// when the name comparison misses (localized type names).
	return project.IssueTypes[0].Fields, nil
}

// GetEditMeta fetches edit-screen metadata for a specific issue.
func (s *MetadataService) GetEditMeta(issueKey string) (map[string]models.FieldMeta, error) {
	var response models.EditMetaResponse

	resp, err := s.client.GetRequest().
		SetResult(&response).
		Get(fmt.Sprintf("/issue/%s/editmeta", issueKey))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch edit metadata for %s: %w", issueKey, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch edit metadata for %s: HTTP %d", issueKey, resp.StatusCode())
	}

	if response.Fields == nil {
		return map[string]models.FieldMeta{}, nil
	}

	return response.Fields, nil
}
