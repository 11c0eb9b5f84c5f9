package translation

import (
	"context"
	"fmt"
	"strings"

	"monastery360/backend/go/internal/llm"
	"monastery360/backend/go/pkg/logger"
)

// Translator performs machine translation through the generation model.
// Translation is best-effort: any failure returns the input text
// unchanged, so a broken translation backend never fails a request.
type Translator struct {
	llm        llm.LLM
	corpusLang string
	log        *logger.Logger
}

// NewTranslator creates a Translator. model may be nil, in which case
// every call degrades to the identity translation.
func NewTranslator(model llm.LLM, corpusLang string, log *logger.Logger) *Translator {
	return &Translator{llm: model, corpusLang: corpusLang, log: log}
}

// CorpusLang returns the language the indexed corpus is written in.
func (t *Translator) CorpusLang() string {
	return t.corpusLang
}

// Translate renders text into targetLang. When targetLang matches the
// corpus language, the model is unavailable, or the call fails, the
// original text is returned.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) string {
	if targetLang == "" || targetLang == t.corpusLang {
		return text
	}
	return t.translate(ctx, text, targetLang)
}

// ToCorpus renders text from sourceLang into the corpus language, with
// the same silent-degrade contract as Translate.
func (t *Translator) ToCorpus(ctx context.Context, text, sourceLang string) string {
	if sourceLang == "" || sourceLang == t.corpusLang {
		return text
	}
	return t.translate(ctx, text, t.corpusLang)
}

func (t *Translator) translate(ctx context.Context, text, lang string) string {
	if t.llm == nil {
		return text
	}

	prompt := fmt.Sprintf(
		"Translate the following text into the language with ISO code %q. "+
			"Reply with the translation only, no commentary.\n\n%s",
		lang, text,
	)

	translated, err := t.llm.Generate(ctx, prompt)
	if err != nil {
		t.log.WithError(err).Warn("translation failed, using original text")
		return text
	}

	translated = strings.TrimSpace(translated)
	if translated == "" {
		return text
	}
	return translated
}
