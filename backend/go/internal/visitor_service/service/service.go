package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"monastery360/backend/go/internal/assistant/cache"
	"monastery360/backend/go/internal/assistant/pipeline"
	"monastery360/backend/go/internal/assistant/schema"
	"monastery360/backend/go/internal/assistant/vectorstore"
	"monastery360/backend/go/internal/config"
	"monastery360/backend/go/internal/embedding"
	"monastery360/backend/go/internal/media"
	"monastery360/backend/go/internal/routing/planner"
	"monastery360/backend/go/internal/tts"
	"monastery360/backend/go/internal/visitor_service/store"
	"monastery360/backend/go/pkg/logger"
)

const ingestEmbedTimeout = 60 * time.Second

// Service implements the visitor-facing operations on top of the
// storage, assistant and routing layers.
type Service struct {
	cfg      *config.AppConfig
	store    *store.Store
	embedder embedding.Embedding
	index    *vectorstore.Store
	qna      *pipeline.QnAPipeline
	cache    cache.AnswerCache
	planner  *planner.Planner
	tts      *tts.Chain
	media    media.Storage
	log      *logger.Logger
}

// NewService wires the visitor service together.
func NewService(
	cfg *config.AppConfig,
	st *store.Store,
	embedder embedding.Embedding,
	index *vectorstore.Store,
	qna *pipeline.QnAPipeline,
	answerCache cache.AnswerCache,
	routePlanner *planner.Planner,
	ttsChain *tts.Chain,
	mediaStorage media.Storage,
	log *logger.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		store:    st,
		embedder: embedder,
		index:    index,
		qna:      qna,
		cache:    answerCache,
		planner:  routePlanner,
		tts:      ttsChain,
		media:    mediaStorage,
		log:      log,
	}
}

// Store exposes the database layer to the API handlers.
func (s *Service) Store() *store.Store { return s.store }

// IngestKnowledge rebuilds the retrieval index from the database. Every
// site, event and archive item becomes one document; embedding is
// best-effort, so an embedding outage produces a lexical-only index
// rather than a failed ingest.
func (s *Service) IngestKnowledge(ctx context.Context) (int, error) {
	monasteries, err := s.store.ListMonasteries()
	if err != nil {
		return 0, err
	}
	events, err := s.store.ListEvents()
	if err != nil {
		return 0, err
	}
	archives, err := s.store.ListArchives()
	if err != nil {
		return 0, err
	}

	var docs []schema.Document
	for _, m := range monasteries {
		parts := []string{m.Location, m.Founded}
		if m.Info != nil {
			parts = append(parts,
				strOrEmpty(m.Info.District),
				strOrEmpty(m.Info.Description),
				strOrEmpty(m.Info.Significance),
			)
		}
		docs = append(docs, schema.Document{
			DocType: schema.DocTypeSite,
			DocID:   m.ID,
			Title:   m.Name,
			Content: joinParts(parts),
		})
	}
	for _, e := range events {
		docs = append(docs, schema.Document{
			DocType: schema.DocTypeEvent,
			DocID:   e.ID,
			Title:   e.Title,
			Content: joinParts([]string{e.Date, e.Time, e.Type, e.Description}),
		})
	}
	for _, a := range archives {
		docs = append(docs, schema.Document{
			DocType: schema.DocTypeArchive,
			DocID:   a.ID,
			Title:   a.Title,
			Content: joinParts([]string{a.Type, a.Description, strOrEmpty(a.DateCreated), a.DigitalizedDate}),
		})
	}

	s.embedDocuments(ctx, docs)
	s.index.Rebuild(docs)

	s.log.WithField("count", strconv.Itoa(len(docs))).Info("knowledge index rebuilt")
	return len(docs), nil
}

// embedDocuments fills in document vectors in place. Any failure leaves
// every vector empty.
func (s *Service) embedDocuments(ctx context.Context, docs []schema.Document) {
	if s.embedder == nil || len(docs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, ingestEmbedTimeout)
	defer cancel()

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil || len(vectors) != len(docs) {
		s.log.WithError(err).Warn("batch embedding failed, index will rank lexically")
		return
	}
	for i := range docs {
		docs[i].Vector = vectors[i]
	}
}

// Qna answers a visitor question through the assistant pipeline.
func (s *Service) Qna(ctx context.Context, question string, topK int, targetLang string) (string, []schema.Citation, error) {
	return s.qna.Answer(ctx, question, topK, targetLang)
}

// CacheEntries lists the cached answers for the admin endpoint.
func (s *Service) CacheEntries(ctx context.Context) ([]cache.ListItem, error) {
	return s.cache.List(ctx)
}

// ClearCache wipes the answer cache and reports how many entries went.
func (s *Service) ClearCache(ctx context.Context) (int64, error) {
	return s.cache.Clear(ctx)
}

func joinParts(parts []string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
