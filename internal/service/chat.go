package service

import (
	"context"
	"strings"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// ChatService answers free-form questions about an indexed document.
type ChatService struct {
	retriever   Retriever
	completions CompletionClient
}

// NewChatService creates a ChatService.
func NewChatService(retriever Retriever, completions CompletionClient) *ChatService {
	return &ChatService{retriever: retriever, completions: completions}
}

// Answer retrieves excerpts relevant to the question and produces a grounded
// answer. An empty question switches to greeting mode: the retrieval query
// becomes a document-summary probe and the reply introduces the document and
// invites questions.
func (s *ChatService) Answer(ctx context.Context, documentID, question string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChatService.Answer", telemetry.SpanAttributes{
		DocumentID: documentID,
		Operation:  "chat",
	})
	defer span.End()

	if documentID == "" {
		return "", domain.ErrNoDocumentID
	}

	question = strings.TrimSpace(question)
	kind := taskChat
	query := question
	if question == "" {
		kind = taskGreeting
		query = summaryRetrievalQuery
	}

	result, err := s.retriever.Retrieve(ctx, query, documentID, DefaultRetrievalTopK)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	prompt := buildPrompt(kind, promptParams{Question: question}, serializeContext(result))
	profile := profileFor(kind)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		span.SetError(err)
		return "", domain.CompletionError(err)
	}

	return parsePlainText(completion), nil
}
