// ABOUTME: MCP tool implementations for platform credential management.
// ABOUTME: Registers setPlatformToken and listPlatforms.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/blogpub/internal/credentials"
)

func (s *Server) registerTokenTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "setPlatformToken",
		Description: "Store the API token for a blogging platform (e.g. devto, hashnode). Replaces any existing token for that platform.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"platform": {"type": "string", "description": "Platform identifier, e.g. devto or hashnode.", "minLength": 1},
				"token": {"type": "string", "description": "API token for the platform.", "minLength": 1}
			},
			"required": ["platform", "token"]
		}`),
	}, s.handleSetPlatformToken)

	if s.platforms == nil {
		return
	}
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "listPlatforms",
		Description: "List supported blogging platforms and whether a token is stored for each.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListPlatforms)
}

func (s *Server) handleSetPlatformToken(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Platform string `json:"platform"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if err := credentials.SetPlatformToken(ctx, s.store, args.Platform, args.Token); err != nil {
		return toolError("failed to save token: %v", err), nil
	}

	return textResult(fmt.Sprintf("Token saved for platform: %s", strings.TrimSpace(args.Platform))), nil
}

// platformStatus is one entry of the listPlatforms response.
type platformStatus struct {
	Platform   string `json:"platform"`
	Configured bool   `json:"configured"`
}

func (s *Server) handleListPlatforms(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	creds := s.store.Load(ctx)

	statuses := make([]platformStatus, 0)
	for _, name := range s.platforms.Names() {
		statuses = append(statuses, platformStatus{Platform: name, Configured: creds[name] != ""})
	}

	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return toolError("failed to encode platforms: %v", err), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
