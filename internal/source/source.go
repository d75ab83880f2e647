package source

import (
	"context"
	"fmt"

	"ComplianceScanner/internal/domain"
)

// Adapter captures a single retrieval strategy (CSRC scrape, Google Custom
// Search, static corpus). Fetch returns up to limit documents for the query.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int) ([]domain.Document, error)
}

// Registry keeps a mapping from adapter names to their implementations.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]Adapter{}
	}
	r.adapters[adapter.Name()] = adapter
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Adapter, error) {
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("source adapter %s is not registered", name)
}
