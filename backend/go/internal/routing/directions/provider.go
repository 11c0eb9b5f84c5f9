package directions

import (
	"context"
	"errors"
	"fmt"

	"monastery360/backend/go/internal/routing/geo"
	"monastery360/backend/go/pkg/logger"
)

// ErrUnconfigured marks a provider that has no credentials or endpoint
// and should be skipped immediately.
var ErrUnconfigured = errors.New("directions provider not configured")

// Leg is the travel-time estimate between two points, with an optional
// path for map rendering.
type Leg struct {
	Minutes int
	Path    []geo.Point
}

// Provider produces one edge cost. Implementations return an error for
// any failure (timeout, bad status, empty result); the chain interprets
// every error as "try the next provider".
type Provider interface {
	Name() string
	Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error)
}

// Chain tries providers strictly in order until one succeeds. Providers
// never run concurrently for one edge. Constructed with the geometric
// estimator last, the chain cannot fail.
type Chain struct {
	providers []Provider
	log       *logger.Logger
}

// NewChain creates a Chain over the given providers, in priority order.
func NewChain(log *logger.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, log: log}
}

// Route returns the first successful provider's leg.
func (c *Chain) Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error) {
	var lastErr error
	for _, p := range c.providers {
		leg, err := p.Route(ctx, from, to, mode)
		if err == nil {
			return leg, nil
		}
		lastErr = err
		if !errors.Is(err, ErrUnconfigured) {
			c.log.WithError(err).WithField("provider", p.Name()).
				Warn("directions provider failed, trying next")
		}
	}
	return Leg{}, fmt.Errorf("all directions providers failed: %w", lastErr)
}
