package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/service"
)

type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) GenerateTitle(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Answer(ctx context.Context, documentID, question string) (string, error) {
	args := m.Called(ctx, documentID, question)
	return args.String(0), args.Error(1)
}

type MockConceptService struct {
	mock.Mock
}

func (m *MockConceptService) ExplainConcept(ctx context.Context, documentID, concept string) (*service.ConceptInfo, error) {
	args := m.Called(ctx, documentID, concept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConceptInfo), args.Error(1)
}

type MockStudyPathService struct {
	mock.Mock
}

func (m *MockStudyPathService) BuildStudyPath(ctx context.Context, documentID, concept string) (*service.StudyPath, error) {
	args := m.Called(ctx, documentID, concept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StudyPath), args.Error(1)
}

func newDocumentHandlerWithMocks() (*DocumentHandler, *MockTitleService, *MockChatService, *MockConceptService, *MockStudyPathService) {
	titles := new(MockTitleService)
	chat := new(MockChatService)
	concepts := new(MockConceptService)
	paths := new(MockStudyPathService)
	return NewDocumentHandler(titles, chat, concepts, paths), titles, chat, concepts, paths
}

func documentRequest(method, url string, body []byte, documentID string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("documentID", documentID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDocumentHandler_Title(t *testing.T) {
	handler, titles, _, _, _ := newDocumentHandlerWithMocks()

	titles.On("GenerateTitle", mock.Anything, "doc-123").Return("Introduction to Photosynthesis", nil)

	req := documentRequest(http.MethodPost, "/documents/doc-123/title", nil, "doc-123")
	rec := httptest.NewRecorder()

	handler.Title(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data TitleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Introduction to Photosynthesis", resp.Data.Title)
}

func TestDocumentHandler_Chat_WithQuestion(t *testing.T) {
	handler, _, chat, _, _ := newDocumentHandlerWithMocks()

	chat.On("Answer", mock.Anything, "doc-123", "What is chlorophyll?").Return("It absorbs light.", nil)

	body, _ := json.Marshal(ChatRequest{Question: "What is chlorophyll?"})
	req := documentRequest(http.MethodPost, "/documents/doc-123/chat", body, "doc-123")
	rec := httptest.NewRecorder()

	handler.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "It absorbs light.", resp.Data.Answer)
}

func TestDocumentHandler_Chat_EmptyBodyGreets(t *testing.T) {
	handler, _, chat, _, _ := newDocumentHandlerWithMocks()

	// An absent body means greeting mode: the question passed down is empty.
	chat.On("Answer", mock.Anything, "doc-123", "").Return("Hello! Ask me about your document.", nil)

	req := documentRequest(http.MethodPost, "/documents/doc-123/chat", nil, "doc-123")
	rec := httptest.NewRecorder()

	handler.Chat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	chat.AssertExpectations(t)
}

func TestDocumentHandler_ExplainConcept(t *testing.T) {
	handler, _, _, concepts, _ := newDocumentHandlerWithMocks()

	concepts.On("ExplainConcept", mock.Anything, "doc-123", "Calvin cycle").
		Return(&service.ConceptInfo{
			Concept:      "Calvin cycle",
			Summary:      "## Calvin Cycle\n\nIt fixes carbon.",
			YouTubeLinks: []domain.VideoLink{{URL: "https://www.youtube.com/watch?v=abc", Title: "Video"}},
			WebLinks:     []domain.WebLink{},
		}, nil)

	body, _ := json.Marshal(ConceptRequest{Concept: "Calvin cycle"})
	req := documentRequest(http.MethodPost, "/documents/doc-123/concepts", body, "doc-123")
	rec := httptest.NewRecorder()

	handler.ExplainConcept(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data service.ConceptInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Calvin cycle", resp.Data.Concept)
	require.Len(t, resp.Data.YouTubeLinks, 1)
	assert.NotNil(t, resp.Data.WebLinks)
}

func TestDocumentHandler_ExplainConcept_MissingConcept(t *testing.T) {
	handler, _, _, _, _ := newDocumentHandlerWithMocks()

	body, _ := json.Marshal(ConceptRequest{})
	req := documentRequest(http.MethodPost, "/documents/doc-123/concepts", body, "doc-123")
	rec := httptest.NewRecorder()

	handler.ExplainConcept(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "concept is required")
}

func TestDocumentHandler_StudyPath(t *testing.T) {
	handler, _, _, _, paths := newDocumentHandlerWithMocks()

	paths.On("BuildStudyPath", mock.Anything, "doc-123", "Photosynthesis").
		Return(&service.StudyPath{
			Concept: "Photosynthesis",
			Steps: []domain.LearningStep{
				{Title: "Light reactions", Summary: "s", YouTubeLinks: []domain.VideoLink{}, WebLinks: []domain.WebLink{}},
			},
		}, nil)

	body, _ := json.Marshal(ConceptRequest{Concept: "Photosynthesis"})
	req := documentRequest(http.MethodPost, "/documents/doc-123/study-path", body, "doc-123")
	rec := httptest.NewRecorder()

	handler.StudyPath(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data service.StudyPath `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Steps, 1)
	assert.Equal(t, "Light reactions", resp.Data.Steps[0].Title)
}

func TestDocumentHandler_StudyPath_ServiceErrorMapsStatus(t *testing.T) {
	handler, _, _, _, paths := newDocumentHandlerWithMocks()

	paths.On("BuildStudyPath", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.RetrievalError(assert.AnError))

	body, _ := json.Marshal(ConceptRequest{Concept: "Photosynthesis"})
	req := documentRequest(http.MethodPost, "/documents/doc-123/study-path", body, "doc-123")
	rec := httptest.NewRecorder()

	handler.StudyPath(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
