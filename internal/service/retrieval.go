package service

import (
	"context"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// RetrievalService issues semantic queries scoped to one document. The
// document filter is applied by the index store itself; excerpts from another
// document must never appear in a result.
type RetrievalService struct {
	store IndexStore
}

// NewRetrievalService creates a RetrievalService backed by the given store.
func NewRetrievalService(store IndexStore) *RetrievalService {
	return &RetrievalService{store: store}
}

// Retrieve runs one similarity query filtered to the document and returns up
// to topK ranked excerpts. An empty result is valid: the caller decides
// whether to degrade or abort.
func (s *RetrievalService) Retrieve(ctx context.Context, query, documentID string, topK int) (domain.RetrievalResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		DocumentID: documentID,
		Operation:  "retrieve",
	})
	defer span.End()

	if documentID == "" {
		return domain.RetrievalResult{}, domain.ErrNoDocumentID
	}
	if topK <= 0 {
		topK = DefaultRetrievalTopK
	}

	excerpts, err := s.store.Query(ctx, query, documentID, topK)
	if err != nil {
		span.SetError(err)
		return domain.RetrievalResult{}, domain.RetrievalError(err)
	}

	return domain.RetrievalResult{
		Query:    query,
		Excerpts: excerpts,
	}, nil
}
