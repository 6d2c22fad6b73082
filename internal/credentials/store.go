// ABOUTME: Credential store contract holding platform -> token mappings.
// ABOUTME: Provides the read-upsert-write helpers used by the setPlatformToken tool and CLI.
package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/2389-research/blogpub/internal/models"
)

// Store persists the credential map. The storage medium is interchangeable.
type Store interface {
	// Load returns the stored map. Missing or corrupt storage yields an
	// empty map rather than an error.
	Load(ctx context.Context) models.CredentialMap

	// Save replaces the stored map with creds.
	Save(ctx context.Context, creds models.CredentialMap) error

	// Update applies fn to the stored map and saves the result. Concurrent
	// updates are serialized so no change is lost.
	Update(ctx context.Context, fn func(creds models.CredentialMap)) error

	// Close releases any resources held by the store.
	Close() error
}

// SetPlatformToken stores token for platform, preserving every other entry.
// No platform-specific validation happens here; tokens are checked at publish time.
func SetPlatformToken(ctx context.Context, store Store, platform, token string) error {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return fmt.Errorf("platform is required")
	}
	if token == "" {
		return fmt.Errorf("token is required")
	}

	err := store.Update(ctx, func(creds models.CredentialMap) {
		creds[platform] = token
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// RemovePlatformToken deletes the token for platform. It reports whether an entry existed.
func RemovePlatformToken(ctx context.Context, store Store, platform string) (bool, error) {
	platform = strings.TrimSpace(platform)
	var removed bool
	err := store.Update(ctx, func(creds models.CredentialMap) {
		_, removed = creds[platform]
		delete(creds, platform)
	})
	if err != nil {
		return false, fmt.Errorf("failed to save credentials: %w", err)
	}
	return removed, nil
}

// MaskToken hides all but the last four characters of token.
func MaskToken(token string) string {
	runes := []rune(token)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

// configDocument is the serialized shape shared by every backend.
type configDocument struct {
	Tokens models.CredentialMap `yaml:"tokens" json:"tokens"`
}
