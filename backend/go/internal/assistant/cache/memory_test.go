package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monastery360/backend/go/internal/assistant/schema"
)

func TestMemoryCachePutGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	citations := []schema.Citation{{DocType: schema.DocTypeSite, DocID: 1, Title: "Hemis"}}
	require.NoError(t, c.Put(ctx, "When was Hemis founded?", "en", "In 1672.", citations))

	entry, ok := c.Get(ctx, "When was Hemis founded?", "en")
	require.True(t, ok)
	assert.Equal(t, "In 1672.", entry.Answer)
	assert.Equal(t, citations, entry.Citations)
}

func TestMemoryCacheExactKeyOnly(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "When was Hemis founded?", "en", "In 1672.", nil))

	// Any textual variation is a different key.
	_, ok := c.Get(ctx, "when was hemis founded?", "en")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "When was Hemis founded? ", "en")
	assert.False(t, ok)

	// Same question, different language: also a miss.
	_, ok = c.Get(ctx, "When was Hemis founded?", "fr")
	assert.False(t, ok)
}

func TestMemoryCacheLastWriteWins(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "q", "en", "first", nil))
	require.NoError(t, c.Put(ctx, "q", "en", "second", nil))

	entry, ok := c.Get(ctx, "q", "en")
	require.True(t, ok)
	assert.Equal(t, "second", entry.Answer)

	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMemoryCacheNilCitations(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "q", "en", "a", nil))

	entry, ok := c.Get(ctx, "q", "en")
	require.True(t, ok)
	// Never nil, always a decodable list.
	assert.NotNil(t, entry.Citations)
	assert.Empty(t, entry.Citations)
}

func TestMemoryCacheListAndClear(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "first", "en", "a", nil))
	require.NoError(t, c.Put(ctx, "second", "fr", "b", nil))

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, uint(2), items[1].ID)

	deleted, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	items, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeCitationsCorruptPayload(t *testing.T) {
	assert.Empty(t, decodeCitations(nil))
	assert.Empty(t, decodeCitations([]byte("not json")))
	assert.Empty(t, decodeCitations([]byte(`{"doc_type":"site"}`)))

	// A stored JSON null decodes cleanly; the result must still be an
	// empty list, never nil.
	assert.NotNil(t, decodeCitations([]byte("null")))
	assert.Empty(t, decodeCitations([]byte("null")))

	decoded := decodeCitations([]byte(`[{"doc_type":"site","doc_id":3,"title":"Hemis"}]`))
	require.Len(t, decoded, 1)
	assert.Equal(t, uint(3), decoded[0].DocID)
}
