package models

import (
	"fmt"
	"sort"
	"strings"
)

// User represents a Jira user
type User struct {
	Self         string `json:"self"`
	AccountID    string `json:"accountId"`
	AccountType  string `json:"accountType"`
	Name         string `json:"name,omitempty"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
	Active       bool   `json:"active"`
}

// Team represents an entry in the tracker's team directory
type Team struct {
	ID          string `json:"id"`
	TeamID      string `json:"teamId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TeamsResponse wraps the paginated team directory response
type TeamsResponse struct {
	Values []Team `json:"values"`
}

// Sprint represents a board sprint
type Sprint struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	BoardID int    `json:"originBoardId,omitempty"`
}

// SprintsResponse wraps the paginated sprint listing response
type SprintsResponse struct {
	Values []Sprint `json:"values"`
}

// Board represents an agile board
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// BoardsResponse wraps the paginated board listing response
type BoardsResponse struct {
	Values []Board `json:"values"`
}

// FieldSchema represents the schema of a field
type FieldSchema struct {
	Type     string `json:"type"`
	Items    string `json:"items,omitempty"`
	System   string `json:"system,omitempty"`
	Custom   string `json:"custom,omitempty"`
	CustomID int    `json:"customId,omitempty"`
}

// Field represents a Jira field (standard or custom) from the field catalog
type Field struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Custom     bool        `json:"custom"`
	Orderable  bool        `json:"orderable"`
	Navigable  bool        `json:"navigable"`
	Searchable bool        `json:"searchable"`
	Schema     FieldSchema `json:"schema"`
}

// AllowedValue is one entry of a field's allowedValues list. Depending on
// the field type the label lives in "value" (options) or "name"
// (priorities, teams).
type AllowedValue struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Label returns whichever of value/name the tracker populated.
func (v AllowedValue) Label() string {
	if v.Value != "" {
		return v.Value
	}
	return v.Name
}

// FieldMeta represents per-screen field metadata (createmeta/editmeta)
type FieldMeta struct {
	Required        bool           `json:"required"`
	Schema          FieldSchema    `json:"schema"`
	Name            string         `json:"name"`
	HasDefaultValue bool           `json:"hasDefaultValue"`
	AllowedValues   []AllowedValue `json:"allowedValues,omitempty"`
	AutoCompleteURL string         `json:"autoCompleteUrl,omitempty"`
}

// CreateMetaResponse represents the create metadata response
type CreateMetaResponse struct {
	Expand   string              `json:"expand"`
	Projects []CreateMetaProject `json:"projects"`
}

// CreateMetaProject represents project info in create metadata
type CreateMetaProject struct {
	Key        string                `json:"key"`
	Name       string                `json:"name"`
	IssueTypes []CreateMetaIssueType `json:"issuetypes"`
}

// CreateMetaIssueType represents issue type info in create metadata
type CreateMetaIssueType struct {
	Name   string               `json:"name"`
	Fields map[string]FieldMeta `json:"fields"`
}

// EditMetaResponse represents the edit metadata response for one issue
type EditMetaResponse struct {
	Fields map[string]FieldMeta `json:"fields"`
}

// Issue represents a Jira issue
type Issue struct {
	ID     string                 `json:"id"`
	Key    string                 `json:"key"`
	Self   string                 `json:"self"`
	Fields map[string]interface{} `json:"fields"`
}

// IssueCreateResult represents the result of creating an issue
type IssueCreateResult struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// SearchResponse represents a JQL search response
type SearchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// ErrorResponse represents a Jira API error response
type ErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	Status        int               `json:"status,omitempty"`
}

// Rejection is a structured validation rejection from a create or update
// call. FieldErrors are messages scoped to a specific field id; Messages are
// general errors the tracker did not attribute to any field.
type Rejection struct {
	StatusCode  int
	FieldErrors map[string]string
	Messages    []string
}

// Summary joins every rejection message into one line, field-scoped errors
// first in id order.
func (r *Rejection) Summary() string {
	ids := make([]string, 0, len(r.FieldErrors))
	for id := range r.FieldErrors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var parts []string
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %s", id, r.FieldErrors[id]))
	}
	parts = append(parts, r.Messages...)
	if len(parts) == 0 {
		return fmt.Sprintf("status %d", r.StatusCode)
	}
	return strings.Join(parts, "; ")
}

// RejectionFromError builds a Rejection from a decoded error response.
func RejectionFromError(status int, resp *ErrorResponse) *Rejection {
	rej := &Rejection{
		StatusCode:  status,
		FieldErrors: make(map[string]string),
	}
	if resp != nil {
		for id, msg := range resp.Errors {
			rej.FieldErrors[id] = msg
		}
		rej.Messages = append(rej.Messages, resp.ErrorMessages...)
	}
	return rej
}
