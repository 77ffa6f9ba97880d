package httpclient

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetWithAuthSetsHeaders(t *testing.T) {
	var gotUser, gotPass, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
	}))
	defer server.Close()

	resp, err := New(testLogger()).GetWithAuth(server.URL, "user", "pass")
	if err != nil {
		t.Fatalf("GetWithAuth() error = %v", err)
	}
	resp.Body.Close()

	if gotUser != "user" || gotPass != "pass" {
		t.Errorf("basic auth = (%q, %q)", gotUser, gotPass)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestPostWithAuthSendsBodyAndContentType(t *testing.T) {
	var gotBody, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	resp, err := New(testLogger()).PostWithAuth(server.URL, "user", "pass", strings.NewReader(`{"a":1}`), "application/json")
	if err != nil {
		t.Fatalf("PostWithAuth() error = %v", err)
	}
	resp.Body.Close()

	if gotBody != `{"a":1}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer server.Close()

	resp, err := New(testLogger()).GetWithAuth(server.URL, "user", "pass")
	if err != nil {
		t.Fatalf("GetWithAuth() error = %v", err)
	}
	resp.Body.Close()

	if attempts != 2 {
		t.Errorf("attempts = %d, want a retry after the first 500", attempts)
	}
}
