// ABOUTME: Opens the credential backend selected in configuration.
// ABOUTME: Chooses between the YAML file and SQLite backends from config.
package credentials

import (
	"context"

	"github.com/2389-research/blogpub/internal/config"
)

// Open returns the store configured by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	path, err := cfg.GetCredentialsPath()
	if err != nil {
		return nil, err
	}
	if cfg.GetCredentialsBackend() == config.BackendSQLite {
		return NewSQLiteStore(ctx, path)
	}
	return NewFileStore(path)
}
