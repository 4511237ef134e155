package domain

// Chunk is a bounded slice of sanitized document text, the unit of indexing.
// Ordinal preserves the chunk's position within the source document.
type Chunk struct {
	Ordinal int
	Text    string
}

// IndexRecord is the persisted unit in the vector index. Key is globally
// unique across documents (document id plus a per-chunk suffix) so concurrent
// ingestions can never collide.
type IndexRecord struct {
	Key        string
	DocumentID string
	Ordinal    int
	Text       string
}

// Excerpt is one ranked result of a similarity query.
type Excerpt struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// RetrievalResult is an ordered sequence of excerpts for one query, most
// relevant first. Ephemeral: consumed by prompt construction, never persisted.
type RetrievalResult struct {
	Query    string    `json:"query"`
	Excerpts []Excerpt `json:"excerpts"`
}

// Empty reports whether the query matched nothing.
func (r RetrievalResult) Empty() bool {
	return len(r.Excerpts) == 0
}
