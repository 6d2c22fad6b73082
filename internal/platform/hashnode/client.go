// ABOUTME: GraphQL client for the Hashnode public API.
// ABOUTME: Sends queries and mutations to a single endpoint and unwraps the errors envelope.
package hashnode

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

// DefaultEndpoint is Hashnode's GraphQL endpoint.
const DefaultEndpoint = "https://gql.hashnode.com"

const (
	meQuery = `query Me { me { id } }`

	publicationQuery = `query Publication { me { publications(first: 1) { edges { node { id } } } } }`

	createDraftMutation = `mutation CreateDraft($input: CreateDraftInput!) {
  createDraft(input: $input) { draft { id } }
}`

	publishDraftMutation = `mutation PublishDraft($input: PublishDraftInput!) {
  publishDraft(input: $input) { post { id title slug url publishedAt } }
}`
)

// Client sends GraphQL operations to Hashnode.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for endpoint. A nil httpClient gets a 30s timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: endpoint, client: httpClient}
}

// graphqlRequest is the POST body for every operation.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlError is one entry of the response errors envelope.
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the top-level response shape.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// APIError is an HTTP failure or a GraphQL errors envelope.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Status != 0 && e.Status != http.StatusOK {
		return fmt.Sprintf("%d %s", e.Status, msg)
	}
	return msg
}

// Do executes one operation and decodes its data field into out.
func (c *Client) Do(ctx context.Context, token, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("Hashnode request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var gqlResp graphqlResponse
	decodeErr := json.Unmarshal(respBody, &gqlResp)

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return &APIError{Status: resp.StatusCode, Messages: messages}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Messages: []string{strings.TrimSpace(string(respBody))}}
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return fmt.Errorf("response has no data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// meData is the result of meQuery.
type meData struct {
	Me *struct {
		ID string `json:"id"`
	} `json:"me"`
}

// Viewer returns the authenticated user's id, or "" when the API reports none.
func (c *Client) Viewer(ctx context.Context, token string) (string, error) {
	var data meData
	if err := c.Do(ctx, token, meQuery, nil, &data); err != nil {
		return "", err
	}
	if data.Me == nil {
		return "", nil
	}
	return data.Me.ID, nil
}

// publicationData is the result of publicationQuery.
type publicationData struct {
	Me *struct {
		Publications struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"publications"`
	} `json:"me"`
}

// PublicationID returns the id of the user's first publication, or "" when none exists.
func (c *Client) PublicationID(ctx context.Context, token string) (string, error) {
	var data publicationData
	if err := c.Do(ctx, token, publicationQuery, nil, &data); err != nil {
		return "", err
	}
	if data.Me == nil {
		return "", nil
	}
	for _, edge := range data.Me.Publications.Edges {
		if edge.Node.ID != "" {
			return edge.Node.ID, nil
		}
	}
	return "", nil
}

// createDraftData is the result of createDraftMutation.
type createDraftData struct {
	CreateDraft *struct {
		Draft *struct {
			ID string `json:"id"`
		} `json:"draft"`
	} `json:"createDraft"`
}

// CreateDraft creates a draft in publicationID and returns its id.
func (c *Client) CreateDraft(ctx context.Context, token, publicationID, title, contentMarkdown string) (string, error) {
	variables := map[string]any{
		"input": map[string]any{
			"title":           title,
			"contentMarkdown": contentMarkdown,
			"publicationId":   publicationID,
		},
	}
	var data createDraftData
	if err := c.Do(ctx, token, createDraftMutation, variables, &data); err != nil {
		return "", err
	}
	if data.CreateDraft == nil || data.CreateDraft.Draft == nil || data.CreateDraft.Draft.ID == "" {
		return "", fmt.Errorf("response is missing createDraft.draft.id")
	}
	return data.CreateDraft.Draft.ID, nil
}

// Post is the published post returned by publishDraftMutation.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// publishDraftData is the result of publishDraftMutation.
type publishDraftData struct {
	PublishDraft *struct {
		Post *Post `json:"post"`
	} `json:"publishDraft"`
}

// PublishDraft publishes the draft with draftID.
func (c *Client) PublishDraft(ctx context.Context, token, draftID string) (*Post, error) {
	variables := map[string]any{
		"input": map[string]any{"draftId": draftID},
	}
	var data publishDraftData
	if err := c.Do(ctx, token, publishDraftMutation, variables, &data); err != nil {
		return nil, err
	}
	if data.PublishDraft == nil || data.PublishDraft.Post == nil || data.PublishDraft.Post.ID == "" {
		return nil, fmt.Errorf("response is missing publishDraft.post")
	}
	return data.PublishDraft.Post, nil
}
