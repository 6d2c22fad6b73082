// ABOUTME: Registry mapping platform identifiers to adapter constructors.
// ABOUTME: The single extension point for adding blogging platforms.
package platform

import (
	"sort"
	"sync"
)

// Factory constructs a live adapter for one platform.
type Factory func() Adapter

// Resolver looks up adapters by platform identifier.
type Resolver interface {
	Resolve(name string) (Adapter, error)
}

// Registry holds the known set of platforms.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Resolve constructs the adapter registered under name.
// Unknown names return an UnsupportedPlatformError.
func (r *Registry) Resolve(name string) (Adapter, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, UnsupportedPlatformError{Platform: name}
	}
	return factory(), nil
}

// Has reports whether name is a known platform.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the known platform identifiers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
