// ABOUTME: Static set of built-in blogging platforms.
// ABOUTME: Registers each supported identifier with a constructor bound to configured endpoints.
package builtin

import (
	"net/http"

	"github.com/2389-research/blogpub/internal/config"
	"github.com/2389-research/blogpub/internal/platform"
	"github.com/2389-research/blogpub/internal/platform/devto"
	"github.com/2389-research/blogpub/internal/platform/hashnode"
)

// NewRegistry returns a registry containing every supported platform.
// Adding a platform means adding one Register call here.
func NewRegistry(cfg *config.Config) *platform.Registry {
	if cfg == nil {
		cfg = &config.Config{}
	}
	httpClient := &http.Client{Timeout: cfg.Publish.Timeout()}

	devtoURL := cfg.GetDevToURL()
	hashnodeEndpoint := cfg.GetHashnodeEndpoint()

	r := platform.NewRegistry()
	r.Register(devto.Name, func() platform.Adapter {
		return devto.New(devto.NewClient(devtoURL, httpClient))
	})
	r.Register(hashnode.Name, func() platform.Adapter {
		return hashnode.New(hashnode.NewClient(hashnodeEndpoint, httpClient))
	})
	return r
}
