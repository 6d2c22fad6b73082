// ABOUTME: Token validation for the setup wizard backed by platform adapters.
// ABOUTME: Resolves the adapter and asks it to check the token when it supports that.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/2389-research/blogpub/internal/platform"
)

// validationTimeout bounds a single validation attempt.
const validationTimeout = 15 * time.Second

// RegistryValidator returns a ValidateFn that checks tokens through adapters
// resolved from r. Adapters without a validation capability accept any token.
func RegistryValidator(r platform.Resolver) ValidateFn {
	return func(ctx context.Context, name, token string) error {
		adapter, err := r.Resolve(name)
		if err != nil {
			return err
		}
		v, ok := platform.Validator(adapter)
		if !ok {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, validationTimeout)
		defer cancel()
		if !v.ValidateToken(ctx, token) {
			return fmt.Errorf("%s rejected the token (or could not be reached)", name)
		}
		return nil
	}
}
