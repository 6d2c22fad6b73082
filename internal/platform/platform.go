// ABOUTME: Capability contract implemented by every blogging platform adapter.
// ABOUTME: Publishing is required; token validation is an optional, separately asserted interface.
package platform

import (
	"context"

	"github.com/2389-research/blogpub/internal/models"
)

// Adapter publishes posts to one external blogging platform.
//
// Adapters are stateless apart from their transport: tokens are passed on
// every call and never cached, so one adapter may serve concurrent publishes.
type Adapter interface {
	// Name returns the platform identifier the adapter is registered under.
	Name() string

	// PublishPost publishes input using token and maps the platform's native
	// response to a PublishResult. Failures identify the remote call that
	// failed and include the upstream status and message where available.
	PublishPost(ctx context.Context, token string, input models.PostInput) (*models.PublishResult, error)
}

// TokenValidator is implemented by adapters that can cheaply check a token
// before a potentially multi-step publish.
//
// ValidateToken never returns an error: network failures and non-2xx answers
// are reported as false.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) bool
}

// Validator returns the adapter's validation capability, if it declares one.
func Validator(a Adapter) (TokenValidator, bool) {
	v, ok := a.(TokenValidator)
	return v, ok
}
