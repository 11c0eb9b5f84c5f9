package geo

import "math"

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Mode is the transport mode for an itinerary.
type Mode string

const (
	ModeFoot Mode = "foot"
	ModeBike Mode = "bike"
	ModeCar  Mode = "car"
)

// minutesPerKm approximates travel pace per mode for the geometric
// fallback when no routing provider is reachable.
var minutesPerKm = map[Mode]float64{
	ModeFoot: 12,
	ModeBike: 3,
	ModeCar:  1,
}

// MinutesPerKm returns the fallback pace for mode, defaulting to foot
// pace for unknown modes.
func MinutesPerKm(mode Mode) float64 {
	if pace, ok := minutesPerKm[mode]; ok {
		return pace
	}
	return minutesPerKm[ModeFoot]
}

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometres.
func Haversine(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
