package choices

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

// FallbackMake is the only make allowed when the enumeration cannot be fetched.
const FallbackMake = "Unknown"

// MakeSource provides the allowed makes from the backend schema.
type MakeSource interface {
	FetchMakes(ctx context.Context) ([]string, error)
}

// Registry caches the make enumeration for the lifetime of the process.
type Registry struct {
	source MakeSource
	log    *zap.Logger

	makes  []string
	loaded bool
}

// NewRegistry returns a registry that loads makes from source on first use.
func NewRegistry(source MakeSource, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{source: source, log: log}
}

// Makes returns the allowed makes, fetching them once. A failed or empty
// fetch caches the fallback list and is never retried.
func (r *Registry) Makes(ctx context.Context) []string {
	if r.loaded {
		return slices.Clone(r.makes)
	}
	makes, err := r.source.FetchMakes(ctx)
	switch {
	case err != nil:
		r.log.Warn("make enumeration unavailable, using fallback", zap.Error(err))
		makes = []string{FallbackMake}
	case len(makes) == 0:
		r.log.Warn("make enumeration empty, using fallback")
		makes = []string{FallbackMake}
	}
	r.makes = slices.Clone(makes)
	r.loaded = true
	return slices.Clone(r.makes)
}

// ValidateMake checks that value is exactly one of the allowed makes.
func (r *Registry) ValidateMake(ctx context.Context, value string) error {
	if slices.Contains(r.Makes(ctx), value) {
		return nil
	}
	return &ValidationError{Field: "make", Input: value, Reason: "not in allowed list"}
}
