package jira

import (
	"fmt"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/client"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// IssueService handles issue create/update/get operations
type IssueService struct {
	client *client.Client
}

// CreateIssueRequest represents a request to create a single issue
type CreateIssueRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// NewIssueService creates a new IssueService instance
func NewIssueService(c *client.Client) *IssueService {
	return &IssueService{client: c}
}

// CreateIssue creates a single issue. A validation rejection (HTTP 4xx with
// a decodable error body) is returned as a *models.Rejection rather than an
// error so the caller can degrade the field set and retry; only transport
// and non-structured failures become errors.
func (s *IssueService) CreateIssue(fields map[string]interface{}) (string, *models.Rejection, error) {
	req := CreateIssueRequest{Fields: fields}

	var result models.IssueCreateResult
	var errorResp models.ErrorResponse

	resp, err := s.client.PostRequest().
		SetBody(req).
		SetResult(&result).
		SetError(&errorResp).
		Post("/issue")

	if err != nil {
		return "", nil, fmt.Errorf("failed to create issue: %w", err)
	}

	if resp.IsError() {
		if isStructured(&errorResp) && resp.StatusCode() < 500 {
			return "", models.RejectionFromError(resp.StatusCode(), &errorResp), nil
		}
		return "", nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return result.Key, nil, nil
}

// UpdateIssue updates fields on an existing issue. Rejections are returned
// structurally, mirroring CreateIssue.
func (s *IssueService) UpdateIssue(keyOrID string, fields map[string]interface{}) (*models.Rejection, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	body := map[string]interface{}{
		"fields": fields,
	}

	var errorResp models.ErrorResponse

	resp, err := s.client.PutRequest().
		SetBody(body).
		SetError(&errorResp).
		Put(fmt.Sprintf("/issue/%s", keyOrID))

	if err != nil {
		return nil, fmt.Errorf("failed to update issue %s: %w", keyOrID, err)
	}

	if resp.IsError() {
		if isStructured(&errorResp) && resp.StatusCode() < 500 {
			return models.RejectionFromError(resp.StatusCode(), &errorResp), nil
		}
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return nil, nil
}

// GetIssue retrieves a single issue by its key or ID
func (s *IssueService) GetIssue(keyOrID string) (*models.Issue, error) {
	var issue models.Issue
	var errorResp models.ErrorResponse

	resp, err := s.client.GetRequest().
		SetResult(&issue).
		SetError(&errorResp).
		Get(fmt.Sprintf("/issue/%s", keyOrID))

	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	if resp.IsError() {
		if resp.StatusCode() == 404 {
			return nil, fmt.Errorf("issue '%s' not found", keyOrID)
		}
		return nil, fmt.Errorf("API error: %s", formatErrorResponse(&errorResp))
	}

	return &issue, nil
}

// GetIssueFields retrieves selected field values of an issue. Used for the
// post-reconciliation verification re-fetch of high-risk fields.
func (s *IssueService) GetIssueFields(keyOrID string, fieldIDs []string) (map[string]interface{}, error) {
	issue, err := s.GetIssue(keyOrID)
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, len(fieldIDs))
	for _, id := range fieldIDs {
		if v, ok := issue.Fields[id]; ok {
			values[id] = v
		}
	}
	return values, nil
}

// isStructured reports whether the decoded error body carries field-level or
// general validation messages the degradation loop can act on.
func isStructured(errResp *models.ErrorResponse) bool {
	return len(errResp.Errors) > 0 || len(errResp.ErrorMessages) > 0
}

// ADFDocument wraps plain text in a minimal Atlassian Document Format
// paragraph, the shape the v3 create endpoint requires for descriptions.
func ADFDocument(text string) map[string]interface{} {
	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": []map[string]interface{}{
			{
				"type": "paragraph",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": text,
					},
				},
			},
		},
	}
}
