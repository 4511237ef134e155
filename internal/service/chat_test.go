package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

func TestChatService_Answer(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewChatService(retriever, completions)

	retriever.On("Retrieve", mock.Anything, "What is chlorophyll?", "doc-123", DefaultRetrievalTopK).
		Return(domain.RetrievalResult{
			Query:    "What is chlorophyll?",
			Excerpts: []domain.Excerpt{{Text: "Chlorophyll absorbs light.", Score: 0.88}},
		}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, 500, float32(0.7)).
		Return("Chlorophyll is the pigment that absorbs light.", nil)

	answer, err := svc.Answer(context.Background(), "doc-123", "What is chlorophyll?")

	require.NoError(t, err)
	assert.Equal(t, "Chlorophyll is the pigment that absorbs light.", answer)

	// The question is both the retrieval query and part of the prompt.
	prompt := completions.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, "What is chlorophyll?")
	retriever.AssertExpectations(t)
}

func TestChatService_Answer_EmptyQuestionGreets(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewChatService(retriever, completions)

	retriever.On("Retrieve", mock.Anything, summaryRetrievalQuery, "doc-123", DefaultRetrievalTopK).
		Return(domain.RetrievalResult{Query: summaryRetrievalQuery}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, 500, float32(0.7)).
		Return("Hello! Your document covers photosynthesis. Ask me anything.", nil)

	answer, err := svc.Answer(context.Background(), "doc-123", "   ")

	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	prompt := completions.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, "greet the user")
	retriever.AssertExpectations(t)
}

func TestChatService_Answer_NoDocumentID(t *testing.T) {
	svc := NewChatService(new(mockRetriever), new(mockCompletions))

	_, err := svc.Answer(context.Background(), "", "question")

	assert.ErrorIs(t, err, domain.ErrNoDocumentID)
}

func TestChatService_Answer_CompletionFailure(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewChatService(retriever, completions)

	retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RetrievalResult{}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	_, err := svc.Answer(context.Background(), "doc-123", "question")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeCompletion, domainErr.Code)
}
