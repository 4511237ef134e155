package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartograph-ai/cartograph/internal/api"
	"github.com/cartograph-ai/cartograph/internal/api/handlers"
	"github.com/cartograph-ai/cartograph/internal/api/middleware"
)

type RouterConfig struct {
	GraphHandler    *handlers.GraphHandler
	DocumentHandler *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Base64-encoded PDFs are large; allow up to ~32MB of body.
	const maxBodyBytes int64 = 32 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/graphs", cfg.GraphHandler.Create)

	r.Route("/documents/{documentID}", func(r chi.Router) {
		r.Post("/title", cfg.DocumentHandler.Title)
		r.Post("/chat", cfg.DocumentHandler.Chat)
		r.Post("/concepts", cfg.DocumentHandler.ExplainConcept)
		r.Post("/study-path", cfg.DocumentHandler.StudyPath)
	})

	return r
}
