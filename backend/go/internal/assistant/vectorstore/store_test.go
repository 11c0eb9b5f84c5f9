package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"monastery360/backend/go/internal/assistant/schema"
)

func TestRebuildReplacesWholeCorpus(t *testing.T) {
	s := NewStore()
	s.Rebuild([]schema.Document{
		{DocType: schema.DocTypeSite, DocID: 1, Title: "Hemis"},
		{DocType: schema.DocTypeSite, DocID: 2, Title: "Thiksey"},
	})
	assert.Equal(t, 2, s.Len())

	s.Rebuild([]schema.Document{
		{DocType: schema.DocTypeEvent, DocID: 9, Title: "Festival"},
	})
	docs := s.Snapshot()
	assert.Len(t, docs, 1)
	assert.Equal(t, "Festival", docs[0].Title)
}

func TestSnapshotIsStableAcrossRebuilds(t *testing.T) {
	s := NewStore()
	s.Rebuild([]schema.Document{{DocID: 1, Title: "Hemis"}})

	snap := s.Snapshot()
	s.Rebuild([]schema.Document{{DocID: 2, Title: "Thiksey"}})

	// The old snapshot still reads the pre-rebuild corpus.
	assert.Equal(t, "Hemis", snap[0].Title)
}

func TestRebuildCopiesInput(t *testing.T) {
	s := NewStore()
	docs := []schema.Document{{DocID: 1, Title: "Hemis"}}
	s.Rebuild(docs)

	docs[0].Title = "mutated"
	assert.Equal(t, "Hemis", s.Snapshot()[0].Title)
}

func TestEmptyStore(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
}
