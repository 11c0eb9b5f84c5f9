package vectorstore

import (
	"sync"

	"monastery360/backend/go/internal/assistant/schema"
)

// Store is a thread-safe in-memory document index. It holds the whole
// corpus and is replaced wholesale on each ingest; there is no
// incremental update path. Insertion order is preserved and serves as
// the tie-break order during retrieval.
type Store struct {
	mu   sync.RWMutex
	docs []schema.Document
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Rebuild atomically replaces the entire index with docs. Concurrent
// readers observe either the previous or the new corpus, never a
// partially written document: the slice is assembled fully before the
// swap.
func (s *Store) Rebuild(docs []schema.Document) {
	replacement := make([]schema.Document, len(docs))
	copy(replacement, docs)

	s.mu.Lock()
	s.docs = replacement
	s.mu.Unlock()
}

// Snapshot returns the current corpus. The returned slice is never
// mutated after a rebuild, so callers may read it without holding the
// lock.
func (s *Store) Snapshot() []schema.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs
}

// Len reports the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
