package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_Reassembles(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
	}{
		{"short text single chunk", "hello world", 2000},
		{"exact boundary", strings.Repeat("a", 100), 50},
		{"uneven tail", strings.Repeat("b", 105), 50},
		{"chunk size one", "abc", 1},
		{"whitespace preserved", "  leading and trailing  ", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkText(tt.text, ChunkConfig{MaxChars: tt.maxChars, BatchSize: 20})

			assert.Equal(t, tt.text, strings.Join(chunks, ""))
			for _, c := range chunks {
				assert.LessOrEqual(t, len([]rune(c)), tt.maxChars)
			}
		})
	}
}

func TestChunkText_Empty(t *testing.T) {
	chunks := chunkText("", DefaultChunkConfig())

	assert.Empty(t, chunks)
}

func TestChunkText_SingleParagraphIsOneChunk(t *testing.T) {
	text := "Photosynthesis converts light energy into chemical energy stored in glucose."

	chunks := chunkText(text, DefaultChunkConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_ZeroConfigFallsBackToDefaults(t *testing.T) {
	text := strings.Repeat("x", 4500)

	chunks := chunkText(text, ChunkConfig{})

	require.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestBatchChunks_Coverage(t *testing.T) {
	chunks := make([]string, 45)
	for i := range chunks {
		chunks[i] = strings.Repeat("c", i+1)
	}

	batches := batchChunks(chunks, ChunkConfig{MaxChars: 2000, BatchSize: 20})

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 20)
	assert.Len(t, batches[1], 20)
	assert.Len(t, batches[2], 5)

	var flattened []string
	for _, b := range batches {
		flattened = append(flattened, b...)
	}
	assert.Equal(t, chunks, flattened)
}

func TestBatchChunks_Empty(t *testing.T) {
	assert.Empty(t, batchChunks(nil, DefaultChunkConfig()))
	assert.Empty(t, batchChunks([]string{}, DefaultChunkConfig()))
}

func TestBatchChunks_SingleBatch(t *testing.T) {
	batches := batchChunks([]string{"one", "two"}, DefaultChunkConfig())

	require.Len(t, batches, 1)
	assert.Equal(t, []string{"one", "two"}, batches[0])
}
