package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monastery360/backend/go/internal/config"
	"monastery360/backend/go/internal/models"
	"monastery360/backend/go/internal/visitor_service/service"
	"monastery360/backend/go/internal/visitor_service/store"
	"monastery360/backend/go/pkg/logger"
)

func newSerializeService() *service.Service {
	cfg := &config.AppConfig{}
	cfg.Server.BaseURL = "http://localhost:8000"
	return service.NewService(cfg, store.NewStore(nil), nil, nil, nil, nil, nil, nil, nil, logger.New("test"))
}

func TestSerializeMonasteryFull(t *testing.T) {
	svc := newSerializeService()

	lat, lng := 34.1642, 77.5848
	district := "Leh"
	duration := 15
	maxPart := 40

	m := &models.Monastery{
		ID:       3,
		Name:     "Hemis",
		Location: "Ladakh",
		Founded:  "1672",
		Media: []models.Media{
			{Title: "Main hall", Type: "image", FilePath: "abc.jpg"},
		},
		Info: &models.MonasteryInfo{
			District:         &district,
			Latitude:         &lat,
			Longitude:        &lng,
			AudioDurationMin: &duration,
		},
		Events: []models.Event{
			{ID: 1, Title: "Festival", CanBook: true, MaxParticipants: &maxPart},
		},
		Archives: []models.ArchiveItem{
			{ID: 2, Title: "Thangka", Type: "mural", ImageURL: "img.png", DigitalizedDate: "2021-03-01"},
		},
		Highlights: []models.AudioHighlight{
			{ID: 5, Title: "Gold statue", DurationSec: 90, Location: "Main hall"},
		},
	}

	raw, err := json.Marshal(serializeMonastery(svc, m))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "Hemis", out["name"])

	media := out["media"].([]any)[0].(map[string]any)
	assert.Equal(t, "http://localhost:8000/media/abc.jpg", media["file_url"])

	info := out["info"].(map[string]any)
	coords := info["coordinates"].(map[string]any)
	assert.Equal(t, 34.1642, coords["lat"])

	guide := info["audioGuide"].(map[string]any)
	assert.Equal(t, float64(15), guide["duration"])
	highlight := guide["highlights"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(90), highlight["duration"])

	event := out["events"].([]any)[0].(map[string]any)
	assert.Equal(t, true, event["canBook"])
	assert.Equal(t, float64(40), event["maxParticipants"])

	archive := out["archiveItems"].([]any)[0].(map[string]any)
	assert.Equal(t, "img.png", archive["imageUrl"])
	assert.Equal(t, "2021-03-01", archive["digitalizedDate"])
	assert.Nil(t, archive["dateCreated"])
}

func TestSerializeMonasteryWithoutInfo(t *testing.T) {
	svc := newSerializeService()

	m := &models.Monastery{ID: 1, Name: "Thiksey", Location: "Ladakh", Founded: "1433"}
	raw, err := json.Marshal(serializeMonastery(svc, m))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	// Info is null, collections serialize as empty arrays rather than null.
	assert.Nil(t, out["info"])
	assert.Equal(t, []any{}, out["media"])
	assert.Equal(t, []any{}, out["events"])
	assert.Equal(t, []any{}, out["archiveItems"])
}
