package provider

import (
	"context"

	"github.com/riordanpawley/overlayctl/internal/domain"
)

type ctxKey struct{}

// WithProvider returns a context carrying s.
func WithProvider(ctx context.Context, s Surface) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the surface stored in ctx, if any.
func FromContext(ctx context.Context) (Surface, bool) {
	s, ok := ctx.Value(ctxKey{}).(Surface)
	if !ok || s == nil {
		return nil, false
	}
	if p, isProvider := s.(*Provider); isProvider && p == nil {
		return nil, false
	}
	return s, true
}

// Use returns the surface stored in ctx. Calling it outside a provider scope
// is a programming error and panics with domain.ErrNoProvider.
func Use(ctx context.Context) Surface {
	s, ok := FromContext(ctx)
	if !ok {
		panic(domain.ErrNoProvider)
	}
	return s
}
