package main

import (
	"fmt"
	"strings"

	"github.com/punkproger/jira-create-issue/pkg/jira"
)

// splitPair splits s on the first occurrence of delimiter. The key is
// trimmed of surrounding blanks; the value keeps any later delimiters.
func splitPair(s, delimiter string) (string, string, error) {
	idx := strings.Index(s, delimiter)
	if idx < 0 {
		return "", "", fmt.Errorf("expected KEY%sVALUE, got %q", delimiter, s)
	}
	return strings.TrimSpace(s[:idx]), s[idx+len(delimiter):], nil
}

// parseSetArgs turns repeated --set FIELD=VALUE flags into a map of
// field name/id to the values given for it, in flag order.
func parseSetArgs(items []string) (map[string][]string, error) {
	values := make(map[string][]string, len(items))
	for _, item := range items {
		key, value, err := splitPair(item, "=")
		if err != nil {
			return nil, fmt.Errorf("invalid --set argument: %w", err)
		}
		values[key] = append(values[key], value)
	}
	return values, nil
}

// parseLinkArgs turns repeated --link ISSUE:LINK_TYPE flags into an
// ordered link list. A repeated issue key overrides its earlier link
// type but keeps its first position.
func parseLinkArgs(items []string) ([]jira.Link, error) {
	var links []jira.Link
	seen := make(map[string]int, len(items))
	for _, item := range items {
		key, linkType, err := splitPair(item, ":")
		if err != nil {
			return nil, fmt.Errorf("invalid --link argument: %w", err)
		}
		if idx, ok := seen[key]; ok {
			links[idx].Type = linkType
			continue
		}
		seen[key] = len(links)
		links = append(links, jira.Link{IssueKey: key, Type: linkType})
	}
	return links, nil
}
