// ABOUTME: Tests for credential MCP tool handlers.
// ABOUTME: Covers setPlatformToken persistence and listPlatforms reporting.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetPlatformTokenValid(t *testing.T) {
	s, store := makeServer(t)

	result := callTool(t, s, "setPlatformToken", map[string]string{
		"platform": "devto",
		"token":    "X",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if got := getTextContent(result); got != "Token saved for platform: devto" {
		t.Errorf("unexpected response: %q", got)
	}

	if got := store.Load(context.Background())["devto"]; got != "X" {
		t.Errorf("expected stored token X, got %q", got)
	}
}

func TestSetPlatformTokenPreservesOtherPlatforms(t *testing.T) {
	s, store := makeServer(t)

	callTool(t, s, "setPlatformToken", map[string]string{"platform": "devto", "token": "X"})
	callTool(t, s, "setPlatformToken", map[string]string{"platform": "hashnode", "token": "Y"})
	callTool(t, s, "setPlatformToken", map[string]string{"platform": "devto", "token": "Z"})

	creds := store.Load(context.Background())
	if creds["devto"] != "Z" || creds["hashnode"] != "Y" || len(creds) != 2 {
		t.Errorf("unexpected credentials: %v", creds)
	}
}

func TestSetPlatformTokenRequiresFields(t *testing.T) {
	s, _ := makeServer(t)

	tests := []map[string]string{
		{"platform": "", "token": "X"},
		{"platform": "devto", "token": ""},
	}
	for _, args := range tests {
		result := callTool(t, s, "setPlatformToken", args)
		if !result.IsError {
			t.Errorf("expected error for args %v", args)
		}
	}
}

func TestSetPlatformTokenInvalidArguments(t *testing.T) {
	s, _ := makeServer(t)

	result := callTool(t, s, "setPlatformToken", map[string]int{"platform": 1})
	if !result.IsError {
		t.Error("expected error for non-string platform")
	}
	if !strings.Contains(getTextContent(result), "invalid arguments") {
		t.Errorf("unexpected message: %s", getTextContent(result))
	}
}

func TestListPlatforms(t *testing.T) {
	s, _ := makeServer(t, stubAdapter{name: "hashnode"}, stubAdapter{name: "devto"})
	callTool(t, s, "setPlatformToken", map[string]string{"platform": "hashnode", "token": "Y"})

	result := callTool(t, s, "listPlatforms", map[string]string{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	var statuses []platformStatus
	if err := json.Unmarshal([]byte(getTextContent(result)), &statuses); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	want := []platformStatus{{"devto", false}, {"hashnode", true}}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d platforms, got %v", len(want), statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("platform %d: expected %+v, got %+v", i, want[i], statuses[i])
		}
	}
}
