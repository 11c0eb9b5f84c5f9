package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-polyline"

	"monastery360/backend/go/internal/routing/geo"
)

const googleTimeout = 15 * time.Second

// GoogleProvider queries the Google Directions API. The summed leg
// durations become the edge cost and the overview polyline becomes the
// rendered path.
type GoogleProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleProvider creates a GoogleProvider. An empty apiKey leaves the
// provider unconfigured; every call then falls through the chain.
func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     apiKey,
		baseURL:    "https://maps.googleapis.com/maps/api/directions/json",
		httpClient: &http.Client{Timeout: googleTimeout},
	}
}

// Name identifies the provider in logs.
func (g *GoogleProvider) Name() string { return "google" }

// travelMode maps the itinerary mode onto the API's mode parameter.
func travelMode(mode geo.Mode) string {
	switch mode {
	case geo.ModeBike:
		return "bicycling"
	case geo.ModeCar:
		return "driving"
	default:
		return "walking"
	}
}

type googleResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// Route requests directions between two points.
func (g *GoogleProvider) Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error) {
	if g.apiKey == "" {
		return Leg{}, ErrUnconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	params.Set("mode", travelMode(mode))
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Leg{}, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Leg{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Leg{}, fmt.Errorf("directions request returned status %d", resp.StatusCode)
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Leg{}, fmt.Errorf("failed to decode directions response: %w", err)
	}
	if parsed.Status != "OK" || len(parsed.Routes) == 0 {
		return Leg{}, fmt.Errorf("directions response status %q with %d routes", parsed.Status, len(parsed.Routes))
	}

	route := parsed.Routes[0]
	var totalSec int
	for _, leg := range route.Legs {
		totalSec += leg.Duration.Value
	}

	coords, _, err := polyline.DecodeCoords([]byte(route.OverviewPolyline.Points))
	if err != nil {
		return Leg{}, fmt.Errorf("failed to decode polyline: %w", err)
	}

	path := make([]geo.Point, len(coords))
	for i, c := range coords {
		path[i] = geo.Point{Lat: c[0], Lng: c[1]}
	}

	return Leg{
		Minutes: int(math.Round(float64(totalSec) / 60)),
		Path:    path,
	}, nil
}

var _ Provider = (*GoogleProvider)(nil)
