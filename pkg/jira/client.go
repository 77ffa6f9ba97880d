package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/punkproger/jira-create-issue/pkg/config"
	"github.com/punkproger/jira-create-issue/pkg/httpclient"
)

// Client is a Jira API client authenticated with user + API token.
type Client struct {
	baseURL    string
	username   string
	token      string
	httpClient *httpclient.Client
	logger     *slog.Logger
}

// NewClient creates a new Jira client from resolved login info.
func NewClient(login *config.LoginInfo, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(login.Server, "/"),
		username:   login.User,
		token:      login.Token,
		httpClient: httpclient.New(logger),
		logger:     logger,
	}
}

// BrowseURL returns the web link to an issue by its key.
func (c *Client) BrowseURL(issueKey string) string {
	return c.baseURL + "/browse/" + issueKey
}

// get performs a GET request against the REST API and returns the
// response body.
func (c *Client) get(endpoint string, params map[string]string) ([]byte, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	if params != nil {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.GetWithAuth(u.String(), c.username, c.token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("not found: %s", endpoint)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// post performs a POST request with a JSON payload and returns the
// response body. wantStatus is the status code indicating success.
func (c *Client) post(endpoint string, payload any, wantStatus int) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.PostWithAuth(c.baseURL+endpoint, c.username, c.token, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Fields retrieves the raw descriptions of all fields known to the
// tracker.
func (c *Client) Fields() ([]map[string]any, error) {
	body, err := c.get("/rest/api/2/field", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get fields: %w", err)
	}

	var fields []map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse fields response: %w", err)
	}
	return fields, nil
}

// EditMeta retrieves the editable field metadata of an issue, keyed by
// field id.
func (c *Client) EditMeta(issueKey string) (map[string]map[string]any, error) {
	body, err := c.get("/rest/api/2/issue/"+issueKey+"/editmeta", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get editmeta for %s: %w", issueKey, err)
	}

	var meta EditMetaResponse
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse editmeta response: %w", err)
	}
	return meta.Fields, nil
}

// SearchIssues performs a JQL query against Jira.
func (c *Client) SearchIssues(jql string, startAt, maxResults int, fields string) (*SearchResponse, error) {
	params := map[string]string{
		"jql":        jql,
		"startAt":    strconv.Itoa(startAt),
		"maxResults": strconv.Itoa(maxResults),
		"fields":     fields,
	}

	body, err := c.get("/rest/api/2/search", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return &result, nil
}

// FindIssueByType finds one existing issue of the given type, narrowed
// to a project when one is supplied. It returns nil when no issue
// matches.
func (c *Client) FindIssueByType(issueType, project string) (*Issue, error) {
	jql := fmt.Sprintf("issuetype=%q", issueType)
	if project != "" {
		jql += fmt.Sprintf(" AND project=%s", project)
	}

	result, err := c.SearchIssues(jql, 0, 1, "")
	if err != nil {
		return nil, err
	}
	if len(result.Issues) == 0 {
		return nil, nil
	}
	return &result.Issues[0], nil
}

// Project retrieves a project by its key.
func (c *Client) Project(key string) (*Project, error) {
	body, err := c.get("/rest/api/2/project/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find Jira project with key=%q: %w", key, err)
	}

	var project Project
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project response: %w", err)
	}
	c.logger.Info("Successfully acquired project info", "key", project.Key, "name", project.Name)
	return &project, nil
}

// Issue retrieves an issue by its key.
func (c *Client) Issue(key string) (*Issue, error) {
	body, err := c.get("/rest/api/2/issue/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", key, err)
	}

	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("failed to parse issue response: %w", err)
	}
	return &issue, nil
}

// SearchUsers searches users by a free-form query (email or display
// name).
func (c *Client) SearchUsers(query string, maxResults int) ([]User, error) {
	params := map[string]string{
		"query":      query,
		"startAt":    "0",
		"maxResults": strconv.Itoa(maxResults),
	}

	body, err := c.get("/rest/api/2/user/search", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user search response: %w", err)
	}
	return users, nil
}

// FindUser looks up a user matching the given email address or display
// name. A query that matches nobody is an error.
func (c *Client) FindUser(name string) (*User, error) {
	c.logger.Info("Searching for user", "query", name)
	users, err := c.SearchUsers(name, 1)
	if err != nil {
		return nil, err
	}
	if len(users) != 0 && (users[0].EmailAddress == name || users[0].DisplayName == name) {
		c.logger.Info("Successfully found user", "accountId", users[0].AccountID, "displayName", users[0].DisplayName)
		return &users[0], nil
	}
	return nil, fmt.Errorf("failed to find user for the given name=%q", name)
}

// CreateIssue submits the converted field map and returns the created
// issue.
func (c *Client) CreateIssue(fields map[string]any) (*CreatedIssue, error) {
	body, err := c.post("/rest/api/2/issue", CreateIssueRequest{Fields: fields}, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	var created CreatedIssue
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse create issue response: %w", err)
	}
	return &created, nil
}

// CreateIssueLink creates a typed link between two Jira issues.
func (c *Client) CreateIssueLink(linkType, inwardKey, outwardKey string) error {
	payload := CreateIssueLinkRequest{
		Type:         LinkType{Name: linkType},
		InwardIssue:  IssueRef{Key: inwardKey},
		OutwardIssue: IssueRef{Key: outwardKey},
	}

	if _, err := c.post("/rest/api/2/issueLink", payload, http.StatusCreated); err != nil {
		return fmt.Errorf("failed to create issue link: %w", err)
	}
	c.logger.Info("Issue link created", "type", linkType, "inward", inwardKey, "outward", outwardKey)
	return nil
}
