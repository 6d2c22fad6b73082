// ABOUTME: MCP server initialization and configuration for blogpub.
// ABOUTME: Exposes token management and multi-platform publishing as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/blogpub/internal/credentials"
	"github.com/2389-research/blogpub/internal/models"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// PostPublisher publishes a post to a list of platforms.
type PostPublisher interface {
	Publish(ctx context.Context, post models.PostInput, platforms []string) ([]models.PlatformOutcome, error)
}

// PlatformLister reports the platform identifiers that can be published to.
type PlatformLister interface {
	Names() []string
}

// Server wraps the MCP server with the publisher and credential store.
type Server struct {
	mcp       *gomcp.Server
	publisher PostPublisher
	store     credentials.Store
	platforms PlatformLister
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithPlatformLister enables the listPlatforms tool.
func WithPlatformLister(l PlatformLister) ServerOption {
	return func(s *Server) {
		s.platforms = l
	}
}

// NewServer creates an MCP server backed by publisher and store.
func NewServer(publisher PostPublisher, store credentials.Store, opts ...ServerOption) (*Server, error) {
	if publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "blogpub",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:       mcpServer,
		publisher: publisher,
		store:     store,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerTokenTools()
	s.registerPublishTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
