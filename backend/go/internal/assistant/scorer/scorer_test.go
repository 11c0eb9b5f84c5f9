package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"monastery360/backend/go/internal/assistant/schema"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
}

func TestCosineSymmetric(t *testing.T) {
	a := []float32{0.3, -1.2, 0.8}
	b := []float32{2.1, 0.4, -0.6}
	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12)
}

func TestCosineZeroNorm(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 2}))
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{0, 0}))
}

func TestScoreUsesVectorsWhenBothPresent(t *testing.T) {
	q := Query{Text: "unrelated words", Vector: []float32{1, 0}}
	doc := schema.Document{Title: "unrelated", Content: "words", Vector: []float32{1, 0}}

	// Cosine of identical vectors, not the lexical count.
	assert.InDelta(t, 1.0, Score(q, doc), 1e-9)
}

func TestScoreFallsBackToLexical(t *testing.T) {
	doc := schema.Document{Title: "Hemis Monastery", Content: "The monastery hosts the Hemis festival."}

	// No query vector: lexical scoring, case-insensitive.
	assert.Equal(t, 2.0, Score(Query{Text: "hemis"}, doc))

	// Mismatched vector lengths also degrade to lexical.
	q := Query{Text: "hemis", Vector: []float32{1, 0}}
	doc.Vector = []float32{1, 0, 0}
	assert.Equal(t, 2.0, Score(q, doc))
}

func TestLexicalCountsDuplicateTerms(t *testing.T) {
	doc := schema.Document{Title: "Thiksey", Content: "gompa on a hill"}

	// The same term listed twice counts twice.
	assert.Equal(t, 2.0, Score(Query{Text: "gompa gompa"}, doc))
}

func TestLexicalMatchesInsideWords(t *testing.T) {
	doc := schema.Document{Title: "Monastery", Content: "monasteries of Ladakh"}

	// "monaster" occurs in both the title and the plural.
	assert.Equal(t, 2.0, Score(Query{Text: "monaster"}, doc))
}
