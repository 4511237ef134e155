package service

// ChunkConfig controls how sanitized document text is split for indexing.
type ChunkConfig struct {
	// MaxChars is the chunk character budget.
	MaxChars int
	// BatchSize is the maximum number of chunks per upsert request.
	BatchSize int
}

// DefaultChunkConfig provides the defaults used for document ingestion.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars:  2000,
		BatchSize: 20,
	}
}

// chunkText splits text into contiguous slices of at most cfg.MaxChars
// characters, preserving order with no overlap. Concatenating the result
// reproduces the input exactly; empty input yields no chunks. Splitting is
// deliberately not paragraph-aware: retrieval is relevance-ranked, so chunk
// boundaries only need to be consistent, not semantic.
func chunkText(text string, cfg ChunkConfig) []string {
	if text == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+cfg.MaxChars-1)/cfg.MaxChars)
	for start := 0; start < len(runes); start += cfg.MaxChars {
		end := start + cfg.MaxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}

// batchChunks groups an ordered chunk list into batches of at most
// cfg.BatchSize, preserving order. Concatenating the batches reproduces the
// input list.
func batchChunks(chunks []string, cfg ChunkConfig) [][]string {
	if len(chunks) == 0 {
		return nil
	}
	size := cfg.BatchSize
	if size <= 0 {
		size = DefaultChunkConfig().BatchSize
	}

	batches := make([][]string, 0, (len(chunks)+size-1)/size)
	for start := 0; start < len(chunks); start += size {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}

	return batches
}
