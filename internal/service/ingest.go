package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

// IndexStore is the vector index collaborator: upsert embedded records, run
// similarity queries scoped to one document, and report per-document record
// counts for readiness polling.
type IndexStore interface {
	Upsert(ctx context.Context, records []domain.IndexRecord) error
	Query(ctx context.Context, queryText, documentID string, topK int) ([]domain.Excerpt, error)
	CountByDocument(ctx context.Context, documentID string) (int, error)
}

// UUIDGenerator mints unique identifiers.
type UUIDGenerator interface {
	NewUUID() string
}

// DefaultUUIDGenerator generates random v4 UUIDs.
type DefaultUUIDGenerator struct{}

func (g *DefaultUUIDGenerator) NewUUID() string {
	return uuid.NewString()
}

// IngestConfig controls index ingestion behavior.
type IngestConfig struct {
	// ReadyTimeout bounds the wait for ingested records to become visible to
	// queries. ReadyPoll is the interval between readiness checks; when it is
	// zero the writer falls back to one fixed sleep of ReadyTimeout, matching
	// index services that expose no readiness signal.
	ReadyTimeout time.Duration
	ReadyPoll    time.Duration
}

// DefaultIngestConfig returns the ingestion defaults.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		ReadyTimeout: 10 * time.Second,
		ReadyPoll:    250 * time.Millisecond,
	}
}

// IngestService materializes chunk batches into the vector index under a
// fresh document identity.
type IngestService struct {
	store IndexStore
	ids   UUIDGenerator
	cfg   IngestConfig
}

// NewIngestService creates an IngestService with default configuration.
func NewIngestService(store IndexStore) *IngestService {
	return NewIngestServiceWithConfig(store, &DefaultUUIDGenerator{}, DefaultIngestConfig())
}

// NewIngestServiceWithConfig creates an IngestService with explicit identity
// generation and readiness configuration.
func NewIngestServiceWithConfig(store IndexStore, ids UUIDGenerator, cfg IngestConfig) *IngestService {
	return &IngestService{
		store: store,
		ids:   ids,
		cfg:   cfg,
	}
}

// Ingest mints one document identity, tags every surviving chunk with it, and
// upserts the batches sequentially. Chunks that are empty after trimming are
// dropped, never indexed. Empty input is a no-op upsert, not an error. A
// batch failure fails the whole ingestion. After all batches land the call
// blocks until the index reports the records queryable.
func (s *IngestService) Ingest(ctx context.Context, batches [][]string) (string, error) {
	documentID := s.ids.NewUUID()

	ordinal := 0
	indexed := 0
	for _, batch := range batches {
		records := s.batchToRecords(batch, documentID, &ordinal)
		if len(records) == 0 {
			continue
		}
		if err := s.store.Upsert(ctx, records); err != nil {
			return "", domain.IndexWriteError(err)
		}
		indexed += len(records)
	}

	if indexed == 0 {
		return documentID, nil
	}

	if err := s.awaitReady(ctx, documentID, indexed); err != nil {
		return "", domain.IndexWriteError(err)
	}

	return documentID, nil
}

// batchToRecords trims and drops empty chunks, assigning each survivor a
// globally unique record key and its original ordinal position.
func (s *IngestService) batchToRecords(batch []string, documentID string, ordinal *int) []domain.IndexRecord {
	records := make([]domain.IndexRecord, 0, len(batch))
	for _, chunk := range batch {
		position := *ordinal
		*ordinal++

		text := strings.TrimSpace(chunk)
		if text == "" {
			continue
		}

		records = append(records, domain.IndexRecord{
			Key:        fmt.Sprintf("%s-%s", documentID, s.ids.NewUUID()),
			DocumentID: documentID,
			Ordinal:    position,
			Text:       text,
		})
	}
	return records
}

// awaitReady blocks until the index reports at least expected records for the
// document, or the configured timeout elapses. The index write path is
// asynchronous relative to query availability, so reading immediately after
// upsert can miss records.
func (s *IngestService) awaitReady(ctx context.Context, documentID string, expected int) error {
	timeout := s.cfg.ReadyTimeout
	if timeout <= 0 {
		timeout = DefaultIngestConfig().ReadyTimeout
	}

	if s.cfg.ReadyPoll <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(timeout):
			return nil
		}
	}

	deadline := time.Now().Add(timeout)
	for {
		count, err := s.store.CountByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		if count >= expected {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("index not ready after %s: %d of %d records visible", timeout, count, expected)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.ReadyPoll):
		}
	}
}
