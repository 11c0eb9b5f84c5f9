package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const elevenLabsDefaultVoice = "EXAVITQu4vr4xnSDxMaL"

// elevenLabsVoices maps the API's named voices onto ElevenLabs voice
// IDs so callers can keep using one voice vocabulary across backends.
var elevenLabsVoices = map[string]string{
	"maple":   "EXAVITQu4vr4xnSDxMaL",
	"alloy":   "pNInz6obpgDQGcFmaJgB",
	"echo":    "AZnzlk1XvdvUeBnXmlld",
	"fable":   "EXAVITQu4vr4xnSDxMaL",
	"onyx":    "pNInz6obpgDQGcFmaJgB",
	"nova":    "EXAVITQu4vr4xnSDxMaL",
	"shimmer": "EXAVITQu4vr4xnSDxMaL",
}

// ElevenLabs synthesizes narration through the ElevenLabs
// text-to-speech API.
type ElevenLabs struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs synthesizer.
func NewElevenLabs(apiKey string) *ElevenLabs {
	return &ElevenLabs{
		apiKey:     apiKey,
		baseURL:    "https://api.elevenlabs.io/v1/text-to-speech",
		httpClient: &http.Client{Timeout: speechTimeout},
	}
}

// Name identifies the synthesizer in logs.
func (e *ElevenLabs) Name() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
	} `json:"voice_settings"`
}

// Synthesize renders script as mp3 audio.
func (e *ElevenLabs) Synthesize(ctx context.Context, script, voice string) ([]byte, error) {
	if e.apiKey == "" {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, speechTimeout)
	defer cancel()

	voiceID, ok := elevenLabsVoices[strings.ToLower(voice)]
	if !ok {
		voiceID = elevenLabsDefaultVoice
	}

	payload := elevenLabsRequest{Text: script, ModelID: "eleven_monolingual_v1"}
	payload.VoiceSettings.Stability = 0.5
	payload.VoiceSettings.SimilarityBoost = 0.5

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/"+voiceID, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs request returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

var _ Synthesizer = (*ElevenLabs)(nil)
