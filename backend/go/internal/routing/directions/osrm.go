package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"monastery360/backend/go/internal/routing/geo"
)

const osrmTimeout = 10 * time.Second

// OSRMProvider queries an OSRM instance as the secondary routing
// backend. OSRM speaks GeoJSON, so returned coordinates arrive
// [lng, lat] and are flipped on ingest.
type OSRMProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMProvider creates an OSRMProvider against baseURL.
func NewOSRMProvider(baseURL string) *OSRMProvider {
	return &OSRMProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: osrmTimeout},
	}
}

// Name identifies the provider in logs.
func (o *OSRMProvider) Name() string { return "osrm" }

// osrmProfile maps the itinerary mode onto an OSRM routing profile.
func osrmProfile(mode geo.Mode) string {
	switch mode {
	case geo.ModeBike:
		return "bike"
	case geo.ModeCar:
		return "driving"
	default:
		return "foot"
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route requests a route between two points.
func (o *OSRMProvider) Route(ctx context.Context, from, to geo.Point, mode geo.Mode) (Leg, error) {
	if o.baseURL == "" {
		return Leg{}, ErrUnconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, osrmTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		o.baseURL, osrmProfile(mode), from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Leg{}, err
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return Leg{}, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Leg{}, fmt.Errorf("osrm request returned status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Leg{}, fmt.Errorf("failed to decode osrm response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return Leg{}, fmt.Errorf("osrm response code %q with %d routes", parsed.Code, len(parsed.Routes))
	}

	route := parsed.Routes[0]
	path := make([]geo.Point, len(route.Geometry.Coordinates))
	for i, c := range route.Geometry.Coordinates {
		if len(c) < 2 {
			return Leg{}, fmt.Errorf("osrm coordinate %d is malformed", i)
		}
		path[i] = geo.Point{Lat: c[1], Lng: c[0]}
	}

	return Leg{
		Minutes: int(math.Round(route.Duration / 60)),
		Path:    path,
	}, nil
}

var _ Provider = (*OSRMProvider)(nil)
