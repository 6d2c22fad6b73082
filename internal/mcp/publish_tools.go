// ABOUTME: MCP tool implementation for cross-posting an article.
// ABOUTME: Registers publishPost, which returns one JSON outcome per requested platform.
package mcp

import (
	"context"
	"encoding/json"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/blogpub/internal/models"
)

func (s *Server) registerPublishTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "publishPost",
		Description: "Publish a Markdown article to one or more blogging platforms. Each platform succeeds or fails independently; results are returned in the order requested.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Article title.", "minLength": 1},
				"contentMarkdown": {"type": "string", "description": "Article body in Markdown."},
				"platforms": {"type": "array", "items": {"type": "string"}, "description": "Platform identifiers to publish to, e.g. [\"devto\", \"hashnode\"]."},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags for the article."}
			},
			"required": ["title", "contentMarkdown", "platforms"]
		}`),
	}, s.handlePublishPost)
}

func (s *Server) handlePublishPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title           string   `json:"title"`
		ContentMarkdown string   `json:"contentMarkdown"`
		Platforms       []string `json:"platforms"`
		Tags            []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	post := models.NewPostInput(args.Title, args.ContentMarkdown, args.Tags)
	outcomes, err := s.publisher.Publish(ctx, post, args.Platforms)
	if err != nil {
		return toolError("failed to publish: %v", err), nil
	}

	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return toolError("failed to encode results: %v", err), nil
	}
	return textResult(string(data)), nil
}
