// Package jira provides a client for the Jira API and the field
// conversion logic used to build issue-creation payloads.
package jira

// SearchResponse represents a Jira search API response.
type SearchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue represents a Jira issue.
type Issue struct {
	ID     string      `json:"id,omitempty"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields,omitempty"`
}

// IssueFields represents the fields of a Jira issue.
type IssueFields struct {
	Summary   string     `json:"summary,omitempty"`
	Status    *Status    `json:"status,omitempty"`
	IssueType *IssueType `json:"issuetype,omitempty"`
}

// Status represents a Jira issue status.
type Status struct {
	Name string `json:"name"`
}

// IssueType represents a Jira issue type.
type IssueType struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Project represents a Jira project.
type Project struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// User represents a Jira user.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// LinkType represents a Jira issue link type.
type LinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward,omitempty"`
	Outward string `json:"outward,omitempty"`
}

// IssueRef represents a reference to a Jira issue.
type IssueRef struct {
	Key string `json:"key"`
}

// CreateIssueLinkRequest represents a request to create an issue link.
type CreateIssueLinkRequest struct {
	Type         LinkType `json:"type"`
	InwardIssue  IssueRef `json:"inwardIssue"`
	OutwardIssue IssueRef `json:"outwardIssue"`
}

// CreateIssueRequest represents an issue-creation payload. Fields maps
// field ids to converted JSON-shaped values.
type CreateIssueRequest struct {
	Fields map[string]any `json:"fields"`
}

// CreatedIssue represents the response to a successful issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self,omitempty"`
}

// EditMetaResponse represents the editmeta API response. Each entry is
// one field's raw schema description keyed by field id.
type EditMetaResponse struct {
	Fields map[string]map[string]any `json:"fields"`
}
