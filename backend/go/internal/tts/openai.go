package tts

import (
	"context"
	"io"
	"time"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

const speechTimeout = 60 * time.Second

// OpenAISpeech synthesizes narration through the OpenAI speech API.
type OpenAISpeech struct {
	client *openai.Client
}

// NewOpenAISpeech creates an OpenAISpeech synthesizer.
func NewOpenAISpeech(apiKey string) *OpenAISpeech {
	return &OpenAISpeech{client: openai.NewClient(apiKey)}
}

// Name identifies the synthesizer in logs.
func (o *OpenAISpeech) Name() string { return "openai" }

// Synthesize renders script as mp3 audio.
func (o *OpenAISpeech) Synthesize(ctx context.Context, script, voice string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, speechTimeout)
	defer cancel()

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel("gpt-4o-mini-tts"),
		Input:          script,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	return io.ReadAll(resp)
}

var _ Synthesizer = (*OpenAISpeech)(nil)
