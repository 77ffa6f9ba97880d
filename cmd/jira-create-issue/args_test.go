package main

import (
	"reflect"
	"testing"

	"github.com/punkproger/jira-create-issue/pkg/jira"
)

func TestParseSetArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string][]string
		wantErr bool
	}{
		{
			name:  "single pair",
			input: []string{"project=PRJ"},
			want:  map[string][]string{"project": {"PRJ"}},
		},
		{
			name:  "value with equals sign",
			input: []string{"summary=a=b=c"},
			want:  map[string][]string{"summary": {"a=b=c"}},
		},
		{
			name:  "key trimmed",
			input: []string{" summary =Fix bug"},
			want:  map[string][]string{"summary": {"Fix bug"}},
		},
		{
			name:  "repeated key accumulates in order",
			input: []string{"labels=PoC", "labels=high_priority"},
			want:  map[string][]string{"labels": {"PoC", "high_priority"}},
		},
		{
			name:  "empty value kept",
			input: []string{"description="},
			want:  map[string][]string{"description": {""}},
		},
		{
			name:  "no input",
			input: nil,
			want:  map[string][]string{},
		},
		{
			name:    "missing delimiter",
			input:   []string{"project"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetArgs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSetArgs(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSetArgs(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLinkArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []jira.Link
		wantErr bool
	}{
		{
			name:  "single link",
			input: []string{"PRJ-100:Is part of"},
			want:  []jira.Link{{IssueKey: "PRJ-100", Type: "Is part of"}},
		},
		{
			name:  "multiple links keep order",
			input: []string{"PRJ-236:Is part of", "PRJ-104:FF-depends on"},
			want: []jira.Link{
				{IssueKey: "PRJ-236", Type: "Is part of"},
				{IssueKey: "PRJ-104", Type: "FF-depends on"},
			},
		},
		{
			name:  "duplicate issue overrides link type",
			input: []string{"PRJ-5:Blocks", "PRJ-6:Is part of", "PRJ-5:Relates"},
			want: []jira.Link{
				{IssueKey: "PRJ-5", Type: "Relates"},
				{IssueKey: "PRJ-6", Type: "Is part of"},
			},
		},
		{
			name:  "no input",
			input: nil,
			want:  nil,
		},
		{
			name:    "missing delimiter",
			input:   []string{"PRJ-100"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLinkArgs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLinkArgs(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLinkArgs(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
