package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartograph-ai/cartograph/internal/api"
	"github.com/cartograph-ai/cartograph/internal/service"
)

type TitleGenerator interface {
	GenerateTitle(ctx context.Context, documentID string) (string, error)
}

type ChatAnswerer interface {
	Answer(ctx context.Context, documentID, question string) (string, error)
}

type ConceptExplainer interface {
	ExplainConcept(ctx context.Context, documentID, concept string) (*service.ConceptInfo, error)
}

type StudyPathBuilder interface {
	BuildStudyPath(ctx context.Context, documentID, concept string) (*service.StudyPath, error)
}

// DocumentHandler serves the task-specific operations against an already
// indexed document.
type DocumentHandler struct {
	titles   TitleGenerator
	chat     ChatAnswerer
	concepts ConceptExplainer
	paths    StudyPathBuilder
}

func NewDocumentHandler(titles TitleGenerator, chat ChatAnswerer, concepts ConceptExplainer, paths StudyPathBuilder) *DocumentHandler {
	return &DocumentHandler{
		titles:   titles,
		chat:     chat,
		concepts: concepts,
		paths:    paths,
	}
}

type ChatRequest struct {
	Question string `json:"question"`
}

type ConceptRequest struct {
	Concept string `json:"concept"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

func (h *DocumentHandler) Title(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if documentID == "" {
		api.Error(w, http.StatusBadRequest, "documentID is required")
		return
	}

	title, err := h.titles.GenerateTitle(r.Context(), documentID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, TitleResponse{Title: title})
}

// Chat answers a question about the document. An empty or absent question is
// valid: the reply is a greeting that summarizes the document.
func (h *DocumentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if documentID == "" {
		api.Error(w, http.StatusBadRequest, "documentID is required")
		return
	}

	var req ChatRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	answer, err := h.chat.Answer(r.Context(), documentID, req.Question)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{Answer: answer})
}

func (h *DocumentHandler) ExplainConcept(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if documentID == "" {
		api.Error(w, http.StatusBadRequest, "documentID is required")
		return
	}

	var req ConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Concept == "" {
		api.Error(w, http.StatusBadRequest, "concept is required")
		return
	}

	info, err := h.concepts.ExplainConcept(r.Context(), documentID, req.Concept)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, info)
}

func (h *DocumentHandler) StudyPath(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if documentID == "" {
		api.Error(w, http.StatusBadRequest, "documentID is required")
		return
	}

	var req ConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Concept == "" {
		api.Error(w, http.StatusBadRequest, "concept is required")
		return
	}

	path, err := h.paths.BuildStudyPath(r.Context(), documentID, req.Concept)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, path)
}
