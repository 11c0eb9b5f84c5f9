package scorer

import (
	"math"
	"strings"

	"monastery360/backend/go/internal/assistant/schema"
)

// Query is the scorer's view of a question: the verbatim text plus its
// embedding, which is empty when no embedding service was reachable.
type Query struct {
	Text   string
	Vector []float32
}

// Score rates how relevant doc is to the query. When both the query and
// the document carry vectors of equal length the score is their cosine
// similarity; otherwise it degrades to a lexical term-frequency count so
// ranking stays usable with the embedding service down.
func Score(q Query, doc schema.Document) float64 {
	if len(q.Vector) > 0 && len(doc.Vector) > 0 && len(q.Vector) == len(doc.Vector) {
		return Cosine(q.Vector, doc.Vector)
	}
	return lexical(q.Text, doc)
}

// Cosine returns the cosine similarity of two equal-length vectors, or
// 0.0 when either norm is zero.
func Cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// lexical sums substring occurrence counts of every query term in the
// document's title and content. Duplicate terms in the query count each
// time, and a term may match inside a longer word.
func lexical(query string, doc schema.Document) float64 {
	haystack := strings.ToLower(doc.Title + " " + doc.Content)

	var total int
	for _, term := range strings.Fields(strings.ToLower(query)) {
		total += strings.Count(haystack, term)
	}
	return float64(total)
}
