// Package handlers implements the HTTP handlers for the document knowledge
// graph API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cartograph-ai/cartograph/internal/api"
	"github.com/cartograph-ai/cartograph/internal/service"
)

type GraphGenerator interface {
	GenerateGraph(ctx context.Context, pdfBase64 string, cfg service.GraphConfig) (*service.GraphResult, error)
}

type GraphHandler struct {
	svc GraphGenerator
}

func NewGraphHandler(svc GraphGenerator) *GraphHandler {
	return &GraphHandler{svc: svc}
}

type CreateGraphRequest struct {
	PDF          string `json:"pdf"`
	MainConcepts int    `json:"main_concepts"`
	NodeCount    int    `json:"node_count"`
}

type GraphResponse struct {
	DocumentID string      `json:"document_id"`
	Graph      interface{} `json:"graph"`
}

// Create ingests a base64-encoded PDF and responds with the generated
// knowledge graph plus the document identity for follow-up requests.
func (h *GraphHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PDF == "" {
		api.Error(w, http.StatusBadRequest, "pdf is required")
		return
	}

	result, err := h.svc.GenerateGraph(r.Context(), req.PDF, service.GraphConfig{
		MainConcepts: req.MainConcepts,
		NodeCount:    req.NodeCount,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, GraphResponse{
		DocumentID: result.DocumentID,
		Graph:      result.Graph,
	})
}
