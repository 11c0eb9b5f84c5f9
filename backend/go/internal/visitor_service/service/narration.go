package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"monastery360/backend/go/internal/models"
)

const defaultVoice = "alloy"

// NarrationScript builds the default guided-tour script for a site.
func NarrationScript(m *models.Monastery) string {
	return fmt.Sprintf(
		"Welcome to %s. Located in %s, this monastery was founded in %s. "+
			"Enjoy this guided audio narration as we explore its history, "+
			"architecture, and cultural significance.",
		m.Name, m.Location, m.Founded,
	)
}

// GenerateNarration synthesizes a narration for a site and records the
// resulting audio as a media row. An empty script falls back to the
// default guided-tour text; an empty voice falls back to the configured
// default.
func (s *Service) GenerateNarration(ctx context.Context, monasteryID uint, title, voice, script string) (*models.Media, error) {
	monastery, err := s.store.GetMonastery(monasteryID)
	if err != nil {
		return nil, err
	}

	if script == "" {
		script = NarrationScript(monastery)
	}
	if title == "" {
		title = "Audio Narration"
	}

	name, err := s.synthesize(ctx, script, voice)
	if err != nil {
		return nil, err
	}

	row := &models.Media{
		Title:    title,
		Type:     "audio",
		FilePath: name,
	}
	if err := s.store.AddMedia(monasteryID, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Narrate synthesizes arbitrary text, stores the audio, and returns the
// generated file name. Unlike GenerateNarration it is not tied to a
// site and records no media row.
func (s *Service) Narrate(ctx context.Context, text, voice string) (string, error) {
	return s.synthesize(ctx, text, voice)
}

func (s *Service) synthesize(ctx context.Context, script, voice string) (string, error) {
	if voice == "" {
		voice = s.cfg.TTS.Voice
	}
	if voice == "" {
		voice = defaultVoice
	}

	audio, err := s.tts.Synthesize(ctx, script, voice)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + ".mp3"
	if err := s.media.Save(ctx, name, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg"); err != nil {
		return "", fmt.Errorf("failed to store narration audio: %w", err)
	}
	return name, nil
}
