package directions

import (
	"context"
	"math"

	"monastery360/backend/go/internal/routing/geo"
)

// GeometricProvider estimates travel time from the great-circle
// distance and a fixed per-mode pace. It needs no network, produces no
// path, and never fails; it terminates every provider chain.
type GeometricProvider struct{}

// NewGeometricProvider creates a GeometricProvider.
func NewGeometricProvider() *GeometricProvider {
	return &GeometricProvider{}
}

// Name identifies the provider in logs.
func (g *GeometricProvider) Name() string { return "geometric" }

// Route estimates the edge as haversine distance times the mode's pace.
func (g *GeometricProvider) Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error) {
	km := geo.Haversine(from, to)
	minutes := int(math.Round(km * geo.MinutesPerKm(mode)))
	return Leg{Minutes: minutes}, nil
}

var _ Provider = (*GeometricProvider)(nil)
