package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"monastery360/backend/go/internal/assistant/schema"
)

// Entry is one cached answer.
type Entry struct {
	Question  string
	Lang      string
	Answer    string
	Citations []schema.Citation
	CreatedAt time.Time
}

// ListItem is the admin view of a cached answer.
type ListItem struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question"`
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerCache maps an exact (question, language) pair to a previously
// produced answer. Entries are never evicted and never expire; a hit
// bypasses retrieval and generation entirely. Concurrent writers for the
// same key resolve last-write-wins, and reads never block on writes.
type AnswerCache interface {
	// Get returns the cached entry for the verbatim question and
	// language, if any. Corrupt citation data yields an entry with an
	// empty citation list, never an error.
	Get(ctx context.Context, question, lang string) (*Entry, bool)

	// Put stores an answer under the exact (question, language) key.
	Put(ctx context.Context, question, lang, answer string, citations []schema.Citation) error

	// List returns all cached entries for the admin endpoint.
	List(ctx context.Context) ([]ListItem, error)

	// Clear removes every entry and reports how many were deleted.
	Clear(ctx context.Context) (int64, error)
}

// questionHash keys long free-text questions with a fixed-width digest
// so the (question, language) pair fits a unique index.
func questionHash(question string) string {
	sum := sha256.Sum256([]byte(question))
	return hex.EncodeToString(sum[:])
}

// decodeCitations parses a stored citation list, degrading to an empty
// list when the payload is missing or corrupt.
func decodeCitations(raw []byte) []schema.Citation {
	if len(raw) == 0 {
		return []schema.Citation{}
	}
	var citations []schema.Citation
	if err := json.Unmarshal(raw, &citations); err != nil {
		return []schema.Citation{}
	}
	if citations == nil {
		// A stored JSON null decodes without error but leaves the
		// slice nil.
		return []schema.Citation{}
	}
	return citations
}
