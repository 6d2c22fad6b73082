// ABOUTME: HTTP client for the DEV.to (Forem) articles REST API.
// ABOUTME: Authenticates with the api-key header and surfaces error bodies verbatim.
package devto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public DEV.to API host.
const DefaultBaseURL = "https://dev.to"

// Client talks to the DEV.to REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, client: httpClient}
}

// ArticleInput is the article body sent to POST /api/articles.
type ArticleInput struct {
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"body_markdown"`
	Published    bool     `json:"published"`
	Tags         []string `json:"tags"`
}

// articlePayload wraps the article as the API expects.
type articlePayload struct {
	Article ArticleInput `json:"article"`
}

// Article is the subset of the created-article response blogpub uses.
type Article struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Body)
}

// CreateArticle posts a new article.
func (c *Client) CreateArticle(ctx context.Context, apiKey string, article ArticleInput) (*Article, error) {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	body, err := json.Marshal(articlePayload{Article: article})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal article: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/articles", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DEV.to request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var created Article
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &created, nil
}

// CheckAuth calls an identity-scoped endpoint and returns an error unless it answers 2xx.
func (c *Client) CheckAuth(ctx context.Context, apiKey string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/articles/me", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api-key", apiKey)

	q := req.URL.Query()
	q.Set("per_page", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("DEV.to request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &StatusError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
