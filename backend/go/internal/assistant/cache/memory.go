package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"monastery360/backend/go/internal/assistant/schema"
)

// MemoryCache is an in-process AnswerCache. It backs tests and
// single-node deployments that run without MySQL or Redis; the contract
// (exact keys, no eviction, last write wins) matches the other backends.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	question  string
	lang      string
	answer    string
	citations json.RawMessage
	createdAt time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get looks up the exact (question, language) key.
func (c *MemoryCache) Get(ctx context.Context, question, lang string) (*Entry, bool) {
	c.mu.RLock()
	stored, ok := c.entries[redisField(question, lang)]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	return &Entry{
		Question:  stored.question,
		Lang:      stored.lang,
		Answer:    stored.answer,
		Citations: decodeCitations(stored.citations),
		CreatedAt: stored.createdAt,
	}, true
}

// Put stores the answer under the (question, language) key.
func (c *MemoryCache) Put(ctx context.Context, question, lang, answer string, citations []schema.Citation) error {
	raw, err := json.Marshal(citations)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[redisField(question, lang)] = memoryEntry{
		question:  question,
		lang:      lang,
		answer:    answer,
		citations: raw,
		createdAt: time.Now().UTC(),
	}
	c.mu.Unlock()
	return nil
}

// List returns all cached entries ordered by creation time.
func (c *MemoryCache) List(ctx context.Context) ([]ListItem, error) {
	c.mu.RLock()
	items := make([]ListItem, 0, len(c.entries))
	for _, stored := range c.entries {
		items = append(items, ListItem{
			Question:  stored.question,
			Lang:      stored.lang,
			CreatedAt: stored.createdAt,
		})
	}
	c.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	for i := range items {
		items[i].ID = uint(i + 1)
	}
	return items, nil
}

// Clear deletes every cached entry.
func (c *MemoryCache) Clear(ctx context.Context) (int64, error) {
	c.mu.Lock()
	count := int64(len(c.entries))
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return count, nil
}

var _ AnswerCache = (*MemoryCache)(nil)
