package fetch

import (
	"context"
	"fmt"

	"NewspaperAnalyzer/internal/domain"
)

// Strategy resolves a configured source to the URL of today's PDF.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, source domain.Source) (string, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// DefaultRegistry registers the direct and landing strategies.
func DefaultRegistry(landing *LandingStrategy) *Registry {
	reg := NewRegistry()
	reg.Register(DirectStrategy{})
	reg.Register(landing)
	return reg
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name; an empty name means direct.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if name == "" {
		name = domain.StrategyDirect
	}
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("fetch strategy %s is not registered", name)
}

// DirectStrategy treats the source URL as the PDF itself.
type DirectStrategy struct{}

// Name identifies the strategy inside the registry.
func (DirectStrategy) Name() string {
	return domain.StrategyDirect
}

// Resolve returns the configured URL unchanged.
func (DirectStrategy) Resolve(_ context.Context, source domain.Source) (string, error) {
	if source.URL == "" {
		return "", fmt.Errorf("source %s has no url", source.Name)
	}
	return source.URL, nil
}
