// ABOUTME: Publish orchestrator fanning one post out to many blogging platforms.
// ABOUTME: Runs an independent validate-then-publish pipeline per platform and keeps request order.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/2389-research/blogpub/internal/logutil"
	"github.com/2389-research/blogpub/internal/models"
	"github.com/2389-research/blogpub/internal/platform"
)

// ErrEmptyTitle is returned for a post without a title. It is the only
// whole-request failure; everything else is reported per platform.
var ErrEmptyTitle = errors.New("title is required")

// CredentialLoader supplies the platform -> token snapshot for one publish call.
type CredentialLoader interface {
	Load(ctx context.Context) models.CredentialMap
}

// Publisher drives publishing across platforms.
type Publisher struct {
	registry   platform.Resolver
	creds      CredentialLoader
	sequential bool
}

// Option configures optional Publisher behaviour.
type Option func(*Publisher)

// WithSequential runs platform pipelines one after another instead of concurrently.
// Observable results are identical either way.
func WithSequential(sequential bool) Option {
	return func(p *Publisher) {
		p.sequential = sequential
	}
}

// New creates a publisher resolving adapters from registry and tokens from creds.
func New(registry platform.Resolver, creds CredentialLoader, opts ...Option) (*Publisher, error) {
	if registry == nil {
		return nil, fmt.Errorf("platform registry is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	p := &Publisher{registry: registry, creds: creds}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish publishes post to each platform and returns one outcome per
// requested platform, in request order. Per-platform failures never produce
// an error; an empty platform list yields an empty result.
func (p *Publisher) Publish(ctx context.Context, post models.PostInput, platforms []string) ([]models.PlatformOutcome, error) {
	if strings.TrimSpace(post.Title) == "" {
		return nil, ErrEmptyTitle
	}

	post = post.Clone()
	outcomes := make([]models.PlatformOutcome, len(platforms))
	if len(platforms) == 0 {
		return outcomes, nil
	}

	runID := uuid.New().String()[:8]
	creds := p.creds.Load(ctx)
	logutil.Debugf("publish run %s: %q to %v", runID, post.Title, platforms)

	if p.sequential {
		for i, name := range platforms {
			outcomes[i] = p.publishOne(ctx, runID, name, creds[name], post)
		}
		return outcomes, nil
	}

	var wg sync.WaitGroup
	for i, name := range platforms {
		wg.Add(1)
		go func(i int, name, token string) {
			defer wg.Done()
			outcomes[i] = p.publishOne(ctx, runID, name, token, post)
		}(i, name, creds[name])
	}
	wg.Wait()

	return outcomes, nil
}

// publishOne runs the full pipeline for one platform and never panics.
func (p *Publisher) publishOne(ctx context.Context, runID, name, token string, post models.PostInput) (outcome models.PlatformOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = models.Failed(name, fmt.Errorf("%s adapter panicked: %v", name, r))
		}
		if outcome.Success {
			logutil.Infof("run %s: published to %s: %s", runID, name, outcome.Result.URL)
		} else {
			logutil.Warnf("run %s: %s failed: %s", runID, name, outcome.Error)
		}
	}()

	if token == "" {
		return models.Failed(name, platform.TokenMissingError{Platform: name})
	}

	adapter, err := p.registry.Resolve(name)
	if err != nil {
		return models.Failed(name, err)
	}

	if v, ok := platform.Validator(adapter); ok {
		if !v.ValidateToken(ctx, token) {
			return models.Failed(name, platform.InvalidTokenError{Platform: name})
		}
	}

	result, err := adapter.PublishPost(ctx, token, post)
	if err != nil {
		return models.Failed(name, err)
	}
	if result == nil {
		return models.Failed(name, &platform.PublishError{Platform: name, Step: "publish", Detail: "adapter returned no result"})
	}
	return models.Succeeded(name, result)
}
