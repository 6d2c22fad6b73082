// ABOUTME: DEV.to platform adapter built on the articles REST client.
// ABOUTME: Publishes in a single call and validates tokens against the user's own articles.
package devto

import (
	"context"
	"errors"
	"strconv"

	"github.com/2389-research/blogpub/internal/models"
	"github.com/2389-research/blogpub/internal/platform"
)

// Name is the registry identifier for DEV.to.
const Name = "devto"

const serviceName = "DEV.to"

// Adapter publishes to DEV.to.
type Adapter struct {
	client *Client
}

// New creates a DEV.to adapter over client.
func New(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name identifies the platform.
func (a *Adapter) Name() string { return Name }

// ValidateToken reports whether the API accepts token.
func (a *Adapter) ValidateToken(ctx context.Context, token string) bool {
	return a.client.CheckAuth(ctx, token) == nil
}

// PublishPost creates the article already published. There is no draft state.
func (a *Adapter) PublishPost(ctx context.Context, token string, input models.PostInput) (*models.PublishResult, error) {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	article, err := a.client.CreateArticle(ctx, token, ArticleInput{
		Title:        input.Title,
		BodyMarkdown: input.ContentMarkdown,
		Published:    true,
		Tags:         tags,
	})
	if err != nil {
		pubErr := &platform.PublishError{Platform: Name, Service: serviceName, Step: "publish"}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			pubErr.Status = statusErr.Status
			pubErr.Detail = statusErr.Body
		} else {
			pubErr.Err = err
		}
		return nil, pubErr
	}

	return &models.PublishResult{
		ID:          strconv.FormatInt(article.ID, 10),
		Title:       article.Title,
		Slug:        article.Slug,
		URL:         article.URL,
		PublishedAt: article.PublishedAt,
	}, nil
}
