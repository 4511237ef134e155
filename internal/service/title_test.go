package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

func TestTitleService_GenerateTitle(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewTitleService(retriever, completions)

	retriever.On("Retrieve", mock.Anything, titleRetrievalQuery, "doc-123", TitleRetrievalTopK).
		Return(domain.RetrievalResult{
			Query:    titleRetrievalQuery,
			Excerpts: []domain.Excerpt{{Text: "Photosynthesis overview", Score: 0.9}},
		}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, 50, float32(0.7)).
		Return("```\nIntroduction to Photosynthesis\n```", nil)

	title, err := svc.GenerateTitle(context.Background(), "doc-123")

	require.NoError(t, err)
	assert.Equal(t, "Introduction to Photosynthesis", title)
	retriever.AssertExpectations(t)
}

func TestTitleService_GenerateTitle_NoDocumentID(t *testing.T) {
	svc := NewTitleService(new(mockRetriever), new(mockCompletions))

	_, err := svc.GenerateTitle(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrNoDocumentID)
}

func TestTitleService_GenerateTitle_EmptyRetrievalStillTitles(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewTitleService(retriever, completions)

	retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RetrievalResult{Query: titleRetrievalQuery, Excerpts: []domain.Excerpt{}}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("Untitled Document", nil)

	title, err := svc.GenerateTitle(context.Background(), "doc-123")

	require.NoError(t, err)
	assert.Equal(t, "Untitled Document", title)
}
