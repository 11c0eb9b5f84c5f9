package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	a := Point{Lat: 34.1642, Lng: 77.5848} // Leh
	b := Point{Lat: 34.1353, Lng: 77.6701} // ~8.4 km away

	km := Haversine(a, b)
	assert.InDelta(t, 8.4, km, 0.3)
}

func TestHaversineZeroDistance(t *testing.T) {
	p := Point{Lat: 34.0, Lng: 77.0}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversineSymmetric(t *testing.T) {
	a := Point{Lat: 34.1642, Lng: 77.5848}
	b := Point{Lat: 33.9456, Lng: 77.6568}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestMinutesPerKm(t *testing.T) {
	assert.Equal(t, 12.0, MinutesPerKm(ModeFoot))
	assert.Equal(t, 3.0, MinutesPerKm(ModeBike))
	assert.Equal(t, 1.0, MinutesPerKm(ModeCar))

	// Unknown modes fall back to walking pace.
	assert.Equal(t, 12.0, MinutesPerKm(Mode("horse")))
}
