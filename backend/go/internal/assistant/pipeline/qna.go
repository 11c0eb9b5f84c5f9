package pipeline

import (
	"context"
	"fmt"
	"time"

	"monastery360/backend/go/internal/assistant/cache"
	"monastery360/backend/go/internal/assistant/retriever"
	"monastery360/backend/go/internal/assistant/schema"
	"monastery360/backend/go/internal/llm"
	"monastery360/backend/go/internal/translation"
	"monastery360/backend/go/pkg/logger"
)

const generateTimeout = 60 * time.Second

// QnAPipeline answers visitor questions over the indexed corpus. The
// flow is cache check, retrieval, generation, persist; every external
// failure after retrieval degrades to a cheaper deterministic step, so
// the pipeline only fails when the index itself is empty.
type QnAPipeline struct {
	cache      cache.AnswerCache
	retriever  *retriever.Retriever
	generator  llm.LLM
	translator *translation.Translator
	log        *logger.Logger
}

// NewQnAPipeline creates a QnAPipeline. generator may be nil, in which
// case every answer is the retrieved context itself.
func NewQnAPipeline(
	answerCache cache.AnswerCache,
	ret *retriever.Retriever,
	generator llm.LLM,
	translator *translation.Translator,
	log *logger.Logger,
) *QnAPipeline {
	return &QnAPipeline{
		cache:      answerCache,
		retriever:  ret,
		generator:  generator,
		translator: translator,
		log:        log,
	}
}

// Answer resolves a question in targetLang. A cache hit returns the
// stored answer without touching the corpus; stale answers persist until
// the key changes. On a miss the pipeline retrieves, generates (or falls
// back to the raw context), and persists the result unconditionally,
// fallback answers included.
func (p *QnAPipeline) Answer(ctx context.Context, question string, topK int, targetLang string) (string, []schema.Citation, error) {
	lang := targetLang
	if lang == "" {
		lang = p.translator.CorpusLang()
	}

	if entry, ok := p.cache.Get(ctx, question, lang); ok {
		p.log.WithPayload(map[string]interface{}{"lang": lang}).Debug("answer cache hit")
		return entry.Answer, entry.Citations, nil
	}

	// Retrieval runs in the corpus language. Translation failures
	// degrade silently to the original question text.
	corpusQuestion := p.translator.ToCorpus(ctx, question, lang)

	result, err := p.retriever.Retrieve(ctx, corpusQuestion, topK)
	if err != nil {
		return "", nil, err
	}

	answer := p.generate(ctx, corpusQuestion, result.Context)
	if answer == "" {
		// Generation unavailable: the retrieved evidence becomes the
		// answer, so the endpoint keeps working through an outage.
		answer = result.Context
	}
	answer = p.translator.Translate(ctx, answer, lang)

	if err := p.cache.Put(ctx, question, lang, answer, result.Citations); err != nil {
		p.log.WithError(err).Warn("failed to persist answer cache entry")
	}

	return answer, result.Citations, nil
}

// generate calls the generation model, returning "" when it is
// unconfigured or fails.
func (p *QnAPipeline) generate(ctx context.Context, question, contextBundle string) string {
	if p.generator == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	answer, err := p.generator.Generate(ctx, buildPrompt(question, contextBundle))
	if err != nil {
		p.log.WithError(err).Warn("answer generation failed, falling back to retrieved context")
		return ""
	}
	return answer
}

// buildPrompt frames the retrieved context for the generation model.
func buildPrompt(question, contextBundle string) string {
	return fmt.Sprintf(
		"You are a visitor guide for a group of monasteries. Answer the "+
			"question using only the context below. Cite nothing outside it.\n\n"+
			"Context:\n%s\n\nQuestion: %s",
		contextBundle, question,
	)
}
