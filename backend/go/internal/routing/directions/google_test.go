package directions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"

	"monastery360/backend/go/internal/routing/geo"
)

func newTestGoogleProvider(serverURL string) *GoogleProvider {
	p := NewGoogleProvider("test-key")
	p.baseURL = serverURL
	return p
}

func TestGoogleRoute(t *testing.T) {
	encoded := string(polyline.EncodeCoords([][]float64{{34.16, 77.58}, {34.17, 77.60}}))

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"routes": []map[string]any{{
				"legs": []map[string]any{
					{"duration": map[string]int{"value": 400}},
					{"duration": map[string]int{"value": 350}},
				},
				"overview_polyline": map[string]string{"points": encoded},
			}},
		})
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL)
	from := geo.Point{Lat: 34.16, Lng: 77.58}
	to := geo.Point{Lat: 34.17, Lng: 77.60}

	leg, err := p.Route(context.Background(), from, to, geo.ModeFoot)
	require.NoError(t, err)

	// Leg durations sum to 750 seconds, rounded to 13 minutes.
	assert.Equal(t, 13, leg.Minutes)

	require.Len(t, leg.Path, 2)
	assert.InDelta(t, 34.16, leg.Path[0].Lat, 1e-4)
	assert.InDelta(t, 77.58, leg.Path[0].Lng, 1e-4)

	assert.Equal(t, "walking", gotQuery["mode"][0])
	assert.Equal(t, "test-key", gotQuery["key"][0])
}

func TestGoogleTravelModes(t *testing.T) {
	assert.Equal(t, "walking", travelMode(geo.ModeFoot))
	assert.Equal(t, "bicycling", travelMode(geo.ModeBike))
	assert.Equal(t, "driving", travelMode(geo.ModeCar))
}

func TestGoogleNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS", "routes": []any{}})
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL)
	_, err := p.Route(context.Background(), geo.Point{}, geo.Point{}, geo.ModeFoot)
	assert.Error(t, err)
}

func TestGoogleUnconfigured(t *testing.T) {
	p := NewGoogleProvider("")
	_, err := p.Route(context.Background(), geo.Point{}, geo.Point{}, geo.ModeFoot)
	assert.ErrorIs(t, err, ErrUnconfigured)
}
