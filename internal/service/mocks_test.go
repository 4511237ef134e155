package service

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

type mockIndexStore struct {
	mock.Mock
}

func (m *mockIndexStore) Upsert(ctx context.Context, records []domain.IndexRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *mockIndexStore) Query(ctx context.Context, queryText, documentID string, topK int) ([]domain.Excerpt, error) {
	args := m.Called(ctx, queryText, documentID, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Excerpt), args.Error(1)
}

func (m *mockIndexStore) CountByDocument(ctx context.Context, documentID string) (int, error) {
	args := m.Called(ctx, documentID)
	return args.Int(0), args.Error(1)
}

type mockIngestor struct {
	mock.Mock
}

func (m *mockIngestor) Ingest(ctx context.Context, batches [][]string) (string, error) {
	args := m.Called(ctx, batches)
	return args.String(0), args.Error(1)
}

type mockRetriever struct {
	mock.Mock
}

func (m *mockRetriever) Retrieve(ctx context.Context, query, documentID string, topK int) (domain.RetrievalResult, error) {
	args := m.Called(ctx, query, documentID, topK)
	return args.Get(0).(domain.RetrievalResult), args.Error(1)
}

type mockCompletions struct {
	mock.Mock
}

func (m *mockCompletions) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

type mockVideoSearcher struct {
	mock.Mock
}

func (m *mockVideoSearcher) SearchVideos(ctx context.Context, query string, max int) ([]domain.VideoLink, error) {
	args := m.Called(ctx, query, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VideoLink), args.Error(1)
}

type mockWebSearcher struct {
	mock.Mock
}

func (m *mockWebSearcher) SearchWeb(ctx context.Context, query string, max int) ([]domain.WebLink, error) {
	args := m.Called(ctx, query, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebLink), args.Error(1)
}

type fixedUUIDGenerator struct {
	next int
}

func (g *fixedUUIDGenerator) NewUUID() string {
	g.next++
	return fmt.Sprintf("uuid-%d", g.next)
}
