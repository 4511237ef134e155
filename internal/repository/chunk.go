// Package repository implements the pgvector-backed index store.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

// EmbeddingClient turns text into a vector representation.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkRepository persists embedded document chunks and serves similarity
// queries scoped to a single document.
type ChunkRepository struct {
	pool     *pgxpool.Pool
	embedder EmbeddingClient
}

func NewChunkRepository(pool *pgxpool.Pool, embedder EmbeddingClient) *ChunkRepository {
	return &ChunkRepository{pool: pool, embedder: embedder}
}

// Upsert embeds each record's text and writes the rows. Re-sending a record
// key replaces its content and embedding.
func (r *ChunkRepository) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	for _, rec := range records {
		embedding, err := r.embedder.GenerateEmbedding(ctx, rec.Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %s: %w", rec.Key, err)
		}

		_, err = r.pool.Exec(ctx,
			`INSERT INTO document_chunks (chunk_key, document_id, ordinal, content, embedding, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (chunk_key) DO UPDATE
			 SET content = EXCLUDED.content, embedding = EXCLUDED.embedding`,
			rec.Key, rec.DocumentID, rec.Ordinal, rec.Text, pgvector.NewVector(embedding), time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert chunk %s: %w", rec.Key, err)
		}
	}
	return nil
}

// Query embeds the query text and returns the topK most similar chunks of the
// document, best first. The document filter is part of the SQL predicate, so
// rows from other documents can never leak into a result.
func (r *ChunkRepository) Query(ctx context.Context, queryText, documentID string, topK int) ([]domain.Excerpt, error) {
	if topK <= 0 {
		topK = 10
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT content, 1.0 / (1.0 + (embedding <=> $1)) AS score
		 FROM document_chunks
		 WHERE document_id = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		pgvector.NewVector(embedding), documentID, topK,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	excerpts := make([]domain.Excerpt, 0, topK)
	for rows.Next() {
		var e domain.Excerpt
		if err := rows.Scan(&e.Text, &e.Score); err != nil {
			return nil, err
		}
		excerpts = append(excerpts, e)
	}
	return excerpts, rows.Err()
}

// CountByDocument reports how many chunks of a document are queryable.
func (r *ChunkRepository) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE document_id = $1`,
		documentID,
	).Scan(&count)
	return count, err
}

// DeleteByDocument removes every chunk of a document.
func (r *ChunkRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM document_chunks WHERE document_id = $1`,
		documentID,
	)
	return err
}
