package service

import (
	"context"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// TitleService derives a short display title for an indexed document.
type TitleService struct {
	retriever   Retriever
	completions CompletionClient
}

// NewTitleService creates a TitleService.
func NewTitleService(retriever Retriever, completions CompletionClient) *TitleService {
	return &TitleService{retriever: retriever, completions: completions}
}

// GenerateTitle retrieves the document's most representative excerpts and asks
// for a short descriptive title. An empty retrieval still produces a title;
// the prompt simply renders with empty context.
func (s *TitleService) GenerateTitle(ctx context.Context, documentID string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "TitleService.GenerateTitle", telemetry.SpanAttributes{
		DocumentID: documentID,
		Operation:  "generate_title",
	})
	defer span.End()

	if documentID == "" {
		return "", domain.ErrNoDocumentID
	}

	result, err := s.retriever.Retrieve(ctx, titleRetrievalQuery, documentID, TitleRetrievalTopK)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	prompt := buildPrompt(taskTitle, promptParams{}, serializeContext(result))
	profile := profileFor(taskTitle)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		span.SetError(err)
		return "", domain.CompletionError(err)
	}

	return parsePlainText(completion), nil
}
