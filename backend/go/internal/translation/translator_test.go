package translation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"monastery360/backend/go/pkg/logger"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestTranslateSkipsCorpusLanguage(t *testing.T) {
	model := &fakeLLM{reply: "should not be used"}
	tr := NewTranslator(model, "en", logger.New("test"))

	assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", "en"))
	assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", ""))
	assert.Equal(t, 0, model.calls)
}

func TestTranslateUsesModel(t *testing.T) {
	model := &fakeLLM{reply: "bonjour"}
	tr := NewTranslator(model, "en", logger.New("test"))

	assert.Equal(t, "bonjour", tr.Translate(context.Background(), "hello", "fr"))
}

func TestTranslateDegradesSilently(t *testing.T) {
	cases := map[string]*fakeLLM{
		"model failure": {err: errors.New("quota")},
		"empty reply":   {reply: "  "},
	}
	for name, model := range cases {
		t.Run(name, func(t *testing.T) {
			tr := NewTranslator(model, "en", logger.New("test"))
			assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", "fr"))
		})
	}

	t.Run("no model", func(t *testing.T) {
		tr := NewTranslator(nil, "en", logger.New("test"))
		assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", "fr"))
	})
}

func TestToCorpusTranslatesIntoCorpusLanguage(t *testing.T) {
	model := &fakeLLM{reply: "hello"}
	tr := NewTranslator(model, "en", logger.New("test"))

	assert.Equal(t, "hello", tr.ToCorpus(context.Background(), "bonjour", "fr"))
	assert.Equal(t, 1, model.calls)

	// Already in the corpus language: untouched, no model call.
	assert.Equal(t, "hi there", tr.ToCorpus(context.Background(), "hi there", "en"))
	assert.Equal(t, 1, model.calls)
}
