package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

func pathCompletion(titles ...string) string {
	type step struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	steps := make([]step, 0, len(titles))
	for i, title := range titles {
		steps = append(steps, step{Title: title, Summary: fmt.Sprintf("Summary %d", i+1)})
	}
	payload, _ := json.Marshal(map[string]any{"steps": steps})
	return string(payload)
}

func TestStudyPathService_BuildStudyPath(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	videos := new(mockVideoSearcher)
	web := new(mockWebSearcher)
	svc := NewStudyPathService(retriever, completions, videos, web)

	titles := []string{"Light reactions", "Electron transport", "ATP synthesis", "Calvin cycle", "Regulation"}
	retriever.On("Retrieve", mock.Anything, "Photosynthesis", "doc-123", PathRetrievalTopK).
		Return(domain.RetrievalResult{
			Query:    "Photosynthesis",
			Excerpts: []domain.Excerpt{{Text: "Photosynthesis has two stages.", Score: 0.9}},
		}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, 800, float32(0.5)).
		Return(pathCompletion(titles...), nil)

	for _, title := range titles {
		query := title + " Photosynthesis"
		videos.On("SearchVideos", mock.Anything, query, DefaultMaxLinks).
			Return([]domain.VideoLink{{URL: "https://www.youtube.com/watch?v=" + title, Title: title}}, nil)
		web.On("SearchWeb", mock.Anything, query, DefaultMaxLinks).
			Return([]domain.WebLink{{URL: "https://example.com/" + title, Title: title}}, nil)
	}

	path, err := svc.BuildStudyPath(context.Background(), "doc-123", "Photosynthesis")

	require.NoError(t, err)
	require.Len(t, path.Steps, len(titles))
	for i, step := range path.Steps {
		// Order survives concurrent enrichment.
		assert.Equal(t, titles[i], step.Title)
		require.Len(t, step.YouTubeLinks, 1)
		require.Len(t, step.WebLinks, 1)
		assert.Equal(t, titles[i], step.YouTubeLinks[0].Title)
	}
	videos.AssertExpectations(t)
	web.AssertExpectations(t)
}

func TestStudyPathService_BuildStudyPath_OneStepEnrichmentFails(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	videos := new(mockVideoSearcher)
	web := new(mockWebSearcher)
	svc := NewStudyPathService(retriever, completions, videos, web)

	retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RetrievalResult{}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(pathCompletion("Basics", "Advanced"), nil)

	videos.On("SearchVideos", mock.Anything, "Basics Topic", DefaultMaxLinks).
		Return(nil, assert.AnError)
	videos.On("SearchVideos", mock.Anything, "Advanced Topic", DefaultMaxLinks).
		Return([]domain.VideoLink{{URL: "u", Title: "Advanced"}}, nil)
	web.On("SearchWeb", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.WebLink{}, nil)

	path, err := svc.BuildStudyPath(context.Background(), "doc-123", "Topic")

	require.NoError(t, err)
	require.Len(t, path.Steps, 2)
	// The failed step degrades to empty links without blocking its sibling.
	assert.Empty(t, path.Steps[0].YouTubeLinks)
	assert.Len(t, path.Steps[1].YouTubeLinks, 1)
}

func TestStudyPathService_BuildStudyPath_DropsUntitledSteps(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewStudyPathService(retriever, completions, nil, nil)

	retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RetrievalResult{}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"steps":[{"title":"  ","summary":"ignored"},{"title":"Kept","summary":"s"}]}`, nil)

	path, err := svc.BuildStudyPath(context.Background(), "doc-123", "Topic")

	require.NoError(t, err)
	require.Len(t, path.Steps, 1)
	assert.Equal(t, "Kept", path.Steps[0].Title)
}

func TestStudyPathService_BuildStudyPath_EmptyOutline(t *testing.T) {
	retriever := new(mockRetriever)
	completions := new(mockCompletions)
	svc := NewStudyPathService(retriever, completions, nil, nil)

	retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.RetrievalResult{}, nil)
	completions.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"steps":[]}`, nil)

	_, err := svc.BuildStudyPath(context.Background(), "doc-123", "Topic")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeMalformedOutput, domainErr.Code)
}

func TestStudyPathService_BuildStudyPath_Validation(t *testing.T) {
	svc := NewStudyPathService(new(mockRetriever), new(mockCompletions), nil, nil)

	_, err := svc.BuildStudyPath(context.Background(), "", "Topic")
	assert.ErrorIs(t, err, domain.ErrNoDocumentID)

	_, err = svc.BuildStudyPath(context.Background(), "doc-123", "")
	assert.ErrorIs(t, err, domain.ErrNoConcept)
}
