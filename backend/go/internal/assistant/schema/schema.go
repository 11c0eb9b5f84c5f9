package schema

// DocType identifies which collection a document was built from.
type DocType string

const (
	DocTypeSite    DocType = "site"
	DocTypeEvent   DocType = "event"
	DocTypeArchive DocType = "archive"
)

// Document is one indexed unit of retrievable text. Vector may be empty
// when the embedding service was unavailable during ingest; scoring then
// falls back to lexical matching.
type Document struct {
	// DocType and DocID together identify the source record.
	DocType DocType
	DocID   uint

	// Title is the record's display name.
	Title string

	// Content is the concatenation of the record's descriptive fields.
	Content string

	// Vector is the embedding of Content, aligned with the batch the
	// index was built from. Possibly empty.
	Vector []float32
}

// Citation is a reference back to a source document used to produce an
// answer.
type Citation struct {
	DocType DocType `json:"doc_type"`
	DocID   uint    `json:"doc_id"`
	Title   string  `json:"title"`
}
