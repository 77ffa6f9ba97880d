package jira

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/punkproger/jira-create-issue/pkg/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.LoginInfo{
		Server: server.URL,
		User:   "user@example.com",
		Token:  "secret-token",
	}, testLogger())
	return client, server
}

func TestClientSendsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Fields(); err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if !gotOK || gotUser != "user@example.com" || gotPass != "secret-token" {
		t.Errorf("basic auth = (%q, %q, %v), want login credentials", gotUser, gotPass, gotOK)
	}
}

func TestClientErrorCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorMessages":["jql is broken"]}`))
	}))

	_, err := client.SearchIssues("bad jql", 0, 1, "")
	if err == nil {
		t.Fatal("SearchIssues() expected error")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "jql is broken") {
		t.Errorf("error %q does not carry status and body", err)
	}
}

func TestClientSearchIssues(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("jql") != `issuetype="Task" AND project=PRJ` {
			t.Errorf("jql = %q", q.Get("jql"))
		}
		if q.Get("maxResults") != "1" {
			t.Errorf("maxResults = %q", q.Get("maxResults"))
		}
		json.NewEncoder(w).Encode(SearchResponse{
			Total:  1,
			Issues: []Issue{{Key: "PRJ-42"}},
		})
	}))

	issue, err := client.FindIssueByType("Task", "PRJ")
	if err != nil {
		t.Fatalf("FindIssueByType() error = %v", err)
	}
	if issue == nil || issue.Key != "PRJ-42" {
		t.Errorf("FindIssueByType() = %+v, want PRJ-42", issue)
	}
}

func TestClientFindIssueByTypeNoMatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{})
	}))

	issue, err := client.FindIssueByType("Task", "")
	if err != nil {
		t.Fatalf("FindIssueByType() error = %v", err)
	}
	if issue != nil {
		t.Errorf("FindIssueByType() = %+v, want nil", issue)
	}
}

func TestClientCreateIssue(t *testing.T) {
	var gotPayload CreateIssueRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/2/issue" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreatedIssue{ID: "10000", Key: "PRJ-43"})
	}))

	created, err := client.CreateIssue(map[string]any{"summary": "Fix bug"})
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}
	if created.Key != "PRJ-43" {
		t.Errorf("created key = %q, want PRJ-43", created.Key)
	}
	if gotPayload.Fields["summary"] != "Fix bug" {
		t.Errorf("payload fields = %v", gotPayload.Fields)
	}
}

func TestClientCreateIssueLink(t *testing.T) {
	var gotPayload CreateIssueLinkRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/2/issueLink" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.CreateIssueLink("Is part of", "PRJ-43", "PRJ-5"); err != nil {
		t.Fatalf("CreateIssueLink() error = %v", err)
	}
	if gotPayload.Type.Name != "Is part of" || gotPayload.InwardIssue.Key != "PRJ-43" || gotPayload.OutwardIssue.Key != "PRJ-5" {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestClientBrowseURL(t *testing.T) {
	client := NewClient(&config.LoginInfo{Server: "https://jira.example.com/", User: "u", Token: "t"}, testLogger())
	if got := client.BrowseURL("PRJ-7"); got != "https://jira.example.com/browse/PRJ-7" {
		t.Errorf("BrowseURL() = %q", got)
	}
}
