package retriever

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"monastery360/backend/go/internal/assistant/schema"
	"monastery360/backend/go/internal/assistant/scorer"
	"monastery360/backend/go/internal/assistant/vectorstore"
	"monastery360/backend/go/internal/embedding"
	"monastery360/backend/go/pkg/logger"
)

// ErrEmptyIndex is returned when retrieval is attempted before any
// documents have been ingested. It is the only assistant failure that
// surfaces to the caller.
var ErrEmptyIndex = errors.New("knowledge index is empty, run ingest first")

const embedTimeout = 60 * time.Second

// Retriever ranks the indexed corpus against a question and assembles
// the context bundle handed to answer generation.
type Retriever struct {
	embedder embedding.Embedding
	store    *vectorstore.Store
	log      *logger.Logger
}

// NewRetriever creates a Retriever. embedder may be nil; every query is
// then scored lexically.
func NewRetriever(embedder embedding.Embedding, store *vectorstore.Store, log *logger.Logger) *Retriever {
	return &Retriever{embedder: embedder, store: store, log: log}
}

// Result is the outcome of one retrieval: the concatenated context
// blocks and the citations for the selected documents, in rank order.
type Result struct {
	Context   string
	Citations []schema.Citation
}

// Retrieve scores every indexed document against the question, selects
// the top max(1, topK), and builds the context bundle. Documents with
// equal scores keep the order they were added during the last rebuild.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) (*Result, error) {
	docs := r.store.Snapshot()
	if len(docs) == 0 {
		return nil, ErrEmptyIndex
	}

	query := scorer.Query{Text: question, Vector: r.embedQuery(ctx, question)}

	type ranked struct {
		index int
		score float64
	}
	scores := make([]ranked, len(docs))
	for i, doc := range docs {
		scores[i] = ranked{index: i, score: scorer.Score(query, doc)}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if topK < 1 {
		topK = 1
	}
	if topK > len(scores) {
		topK = len(scores)
	}
	selected := scores[:topK]

	blocks := make([]string, len(selected))
	citations := make([]schema.Citation, len(selected))
	for i, s := range selected {
		doc := docs[s.index]
		blocks[i] = fmt.Sprintf("[%s:%d] %s\n%s", doc.DocType, doc.DocID, doc.Title, doc.Content)
		citations[i] = schema.Citation{DocType: doc.DocType, DocID: doc.DocID, Title: doc.Title}
	}

	return &Result{
		Context:   strings.Join(blocks, "\n\n"),
		Citations: citations,
	}, nil
}

// embedQuery returns the question's embedding, or nil when the embedder
// is unavailable or fails. A nil vector forces lexical scoring for the
// whole corpus.
func (r *Retriever) embedQuery(ctx context.Context, question string) []float32 {
	if r.embedder == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		r.log.WithError(err).Warn("query embedding failed, scoring lexically")
		return nil
	}
	return vec
}
