// ABOUTME: Hashnode platform adapter implementing the draft-then-publish protocol.
// ABOUTME: Resolves the publication, creates a draft, then publishes it, strictly in that order.
package hashnode

import (
	"context"
	"errors"
	"strings"

	"github.com/2389-research/blogpub/internal/models"
	"github.com/2389-research/blogpub/internal/platform"
)

// Name is the registry identifier for Hashnode.
const Name = "hashnode"

const serviceName = "Hashnode"

// Publish protocol steps, as they appear in error messages.
const (
	StepPublication  = "getPublicationId"
	StepCreateDraft  = "createDraft"
	StepPublishDraft = "publishDraft"
)

// Adapter publishes to Hashnode.
type Adapter struct {
	client *Client
}

// New creates a Hashnode adapter over client.
func New(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Name identifies the platform.
func (a *Adapter) Name() string { return Name }

// ValidateToken reports whether the token resolves to a user id.
func (a *Adapter) ValidateToken(ctx context.Context, token string) bool {
	id, err := a.client.Viewer(ctx, token)
	return err == nil && id != ""
}

// PublishPost runs the three-call publish sequence. A failure at any step
// aborts the remaining steps.
func (a *Adapter) PublishPost(ctx context.Context, token string, input models.PostInput) (*models.PublishResult, error) {
	publicationID, err := a.client.PublicationID(ctx, token)
	if err != nil {
		return nil, stepError(StepPublication, err)
	}
	if publicationID == "" {
		return nil, &platform.PublishError{
			Platform: Name,
			Service:  serviceName,
			Step:     StepPublication,
			Err:      platform.ErrNoPublicationFound,
		}
	}

	draftID, err := a.client.CreateDraft(ctx, token, publicationID, input.Title, input.ContentMarkdown)
	if err != nil {
		return nil, stepError(StepCreateDraft, err)
	}

	post, err := a.client.PublishDraft(ctx, token, draftID)
	if err != nil {
		return nil, stepError(StepPublishDraft, err)
	}

	return &models.PublishResult{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		URL:         post.URL,
		PublishedAt: post.PublishedAt,
	}, nil
}

func stepError(step string, err error) *platform.PublishError {
	pubErr := &platform.PublishError{Platform: Name, Service: serviceName, Step: step}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status != 200 {
			pubErr.Status = apiErr.Status
		}
		pubErr.Detail = strings.Join(apiErr.Messages, "; ")
		return pubErr
	}
	pubErr.Err = err
	return pubErr
}
