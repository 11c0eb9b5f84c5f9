package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"monastery360/backend/go/internal/assistant/schema"
)

const redisHashKey = "monastery360:qa_cache"

// redisEntry is the JSON document stored per cache field. Citations stay
// a raw message so a corrupt citation payload degrades to an empty list
// instead of poisoning the whole entry.
type redisEntry struct {
	Question  string          `json:"question"`
	Lang      string          `json:"lang"`
	Answer    string          `json:"answer"`
	Citations json.RawMessage `json:"citations"`
	CreatedAt time.Time       `json:"created_at"`
}

// RedisCache keeps answers in a single Redis hash. HSET/HGET give the
// same last-write-wins, non-blocking-read behavior as the MySQL backend,
// with no TTL so entries live until the admin clears them.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache on an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func redisField(question, lang string) string {
	return questionHash(question) + "|" + lang
}

// Get looks up the exact (question, language) key.
func (c *RedisCache) Get(ctx context.Context, question, lang string) (*Entry, bool) {
	raw, err := c.client.HGet(ctx, redisHashKey, redisField(question, lang)).Bytes()
	if err != nil {
		return nil, false
	}

	var stored redisEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false
	}

	return &Entry{
		Question:  stored.Question,
		Lang:      stored.Lang,
		Answer:    stored.Answer,
		Citations: decodeCitations(stored.Citations),
		CreatedAt: stored.CreatedAt,
	}, true
}

// Put stores the answer under the (question, language) key.
func (c *RedisCache) Put(ctx context.Context, question, lang, answer string, citations []schema.Citation) error {
	rawCitations, err := json.Marshal(citations)
	if err != nil {
		return fmt.Errorf("failed to encode citations: %w", err)
	}

	raw, err := json.Marshal(redisEntry{
		Question:  question,
		Lang:      lang,
		Answer:    answer,
		Citations: rawCitations,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return c.client.HSet(ctx, redisHashKey, redisField(question, lang), raw).Err()
}

// List returns all cached entries ordered by creation time. Redis
// entries carry no numeric ID; positions after sorting stand in for it.
func (c *RedisCache) List(ctx context.Context) ([]ListItem, error) {
	fields, err := c.client.HGetAll(ctx, redisHashKey).Result()
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(fields))
	for _, raw := range fields {
		var stored redisEntry
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			continue
		}
		items = append(items, ListItem{
			Question:  stored.Question,
			Lang:      stored.Lang,
			CreatedAt: stored.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	for i := range items {
		items[i].ID = uint(i + 1)
	}
	return items, nil
}

// Clear deletes every cached entry.
func (c *RedisCache) Clear(ctx context.Context) (int64, error) {
	count, err := c.client.HLen(ctx, redisHashKey).Result()
	if err != nil {
		return 0, err
	}
	if err := c.client.Del(ctx, redisHashKey).Err(); err != nil {
		return 0, err
	}
	return count, nil
}

var _ AnswerCache = (*RedisCache)(nil)
