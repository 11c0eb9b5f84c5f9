package tts

import (
	"context"
	"errors"
	"fmt"

	"monastery360/backend/go/internal/config"
	"monastery360/backend/go/pkg/logger"
)

// ErrUnavailable marks a synthesizer that has no credentials and should
// be skipped immediately.
var ErrUnavailable = errors.New("tts synthesizer not available")

// Synthesizer turns a narration script into encoded audio (mp3).
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, script, voice string) ([]byte, error)
}

// Chain tries synthesizers in order until one produces audio.
type Chain struct {
	synths []Synthesizer
	log    *logger.Logger
}

// NewChain builds the synthesizer chain from config: OpenAI speech
// first, ElevenLabs second. An empty chain is valid; Synthesize then
// reports that no backend is configured.
func NewChain(cfg *config.AppConfig, log *logger.Logger) *Chain {
	var synths []Synthesizer
	if cfg.TTS.OpenAI.APIKey != "" {
		synths = append(synths, NewOpenAISpeech(cfg.TTS.OpenAI.APIKey))
	}
	if cfg.TTS.ElevenLabs.APIKey != "" {
		synths = append(synths, NewElevenLabs(cfg.TTS.ElevenLabs.APIKey))
	}
	return &Chain{synths: synths, log: log}
}

// Synthesize returns audio from the first synthesizer that succeeds.
func (c *Chain) Synthesize(ctx context.Context, script, voice string) ([]byte, error) {
	if len(c.synths) == 0 {
		return nil, fmt.Errorf("no tts backend configured: %w", ErrUnavailable)
	}
	var lastErr error
	for _, s := range c.synths {
		audio, err := s.Synthesize(ctx, script, voice)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		if !errors.Is(err, ErrUnavailable) {
			c.log.WithError(err).WithField("synthesizer", s.Name()).
				Warn("tts synthesizer failed, trying next")
		}
	}
	return nil, fmt.Errorf("all tts synthesizers failed: %w", lastErr)
}
