package directions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monastery360/backend/go/internal/routing/geo"
	"monastery360/backend/go/pkg/logger"
)

type stubProvider struct {
	name  string
	leg   Leg
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error) {
	s.calls++
	return s.leg, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubProvider{name: "first", leg: Leg{Minutes: 7}}
	second := &stubProvider{name: "second", leg: Leg{Minutes: 99}}
	c := NewChain(logger.New("test"), first, second)

	leg, err := c.Route(context.Background(), geo.Point{}, geo.Point{}, geo.ModeFoot)
	require.NoError(t, err)
	assert.Equal(t, 7, leg.Minutes)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("timeout")}
	second := &stubProvider{name: "second", err: ErrUnconfigured}
	third := &stubProvider{name: "third", leg: Leg{Minutes: 3}}
	c := NewChain(logger.New("test"), first, second, third)

	leg, err := c.Route(context.Background(), geo.Point{}, geo.Point{}, geo.ModeFoot)
	require.NoError(t, err)
	assert.Equal(t, 3, leg.Minutes)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainAllFail(t *testing.T) {
	c := NewChain(logger.New("test"),
		&stubProvider{name: "a", err: ErrUnconfigured},
		&stubProvider{name: "b", err: errors.New("boom")},
	)

	_, err := c.Route(context.Background(), geo.Point{}, geo.Point{}, geo.ModeFoot)
	assert.Error(t, err)
}

func TestChainWithGeometricNeverFails(t *testing.T) {
	c := NewChain(logger.New("test"),
		&stubProvider{name: "down", err: errors.New("unreachable")},
		NewGeometricProvider(),
	)

	from := geo.Point{Lat: 34.0, Lng: 77.0}
	leg, err := c.Route(context.Background(), from, pointAtKm(from, 1), geo.ModeFoot)
	require.NoError(t, err)
	assert.Equal(t, 12, leg.Minutes)
}
