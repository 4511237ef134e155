package service

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// VideoSearcher finds learning videos for a query.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, max int) ([]domain.VideoLink, error)
}

// WebSearcher finds web articles for a query.
type WebSearcher interface {
	SearchWeb(ctx context.Context, query string, max int) ([]domain.WebLink, error)
}

// ConceptInfo is the expanded view of one graph node: a grounded markdown
// summary plus external learning resources.
type ConceptInfo struct {
	Concept      string             `json:"concept"`
	Summary      string             `json:"summary"`
	YouTubeLinks []domain.VideoLink `json:"youtube_links"`
	WebLinks     []domain.WebLink   `json:"web_links"`
}

// ConceptService explains a single concept against its source document and
// enriches the explanation with external links.
type ConceptService struct {
	retriever   Retriever
	completions CompletionClient
	videos      VideoSearcher
	web         WebSearcher
}

// NewConceptService creates a ConceptService. Either searcher may be nil when
// the corresponding provider is not configured; its link list is then empty.
func NewConceptService(retriever Retriever, completions CompletionClient, videos VideoSearcher, web WebSearcher) *ConceptService {
	return &ConceptService{
		retriever:   retriever,
		completions: completions,
		videos:      videos,
		web:         web,
	}
}

// ExplainConcept retrieves excerpts matching the concept, writes a grounded
// markdown summary, then derives a short search query and fans it out to the
// video and web providers in parallel. The summary is the critical output: a
// summary failure fails the call, while link failures only empty their list.
func (s *ConceptService) ExplainConcept(ctx context.Context, documentID, concept string) (*ConceptInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "ConceptService.ExplainConcept", telemetry.SpanAttributes{
		DocumentID: documentID,
		Concept:    concept,
		Operation:  "explain_concept",
	})
	defer span.End()

	if documentID == "" {
		return nil, domain.ErrNoDocumentID
	}
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, domain.ErrNoConcept
	}

	result, err := s.retriever.Retrieve(ctx, concept, documentID, DefaultRetrievalTopK)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	serialized := serializeContext(result)

	prompt := buildPrompt(taskConcept, promptParams{Concept: concept}, serialized)
	profile := profileFor(taskConcept)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		span.SetError(err)
		return nil, domain.CompletionError(err)
	}
	summary := parsePlainText(completion)

	query := s.deriveSearchQuery(ctx, concept, serialized)
	videoLinks, webLinks := fanOutLinks(ctx, s.videos, s.web, query, DefaultMaxLinks)

	return &ConceptInfo{
		Concept:      concept,
		Summary:      summary,
		YouTubeLinks: videoLinks,
		WebLinks:     webLinks,
	}, nil
}

// deriveSearchQuery runs the cold search-query completion. Link enrichment is
// non-critical, so a derivation failure degrades to the concept itself.
func (s *ConceptService) deriveSearchQuery(ctx context.Context, concept, serialized string) string {
	prompt := buildPrompt(taskSearchQuery, promptParams{Concept: concept}, serialized)
	profile := profileFor(taskSearchQuery)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		log.Printf("concept: search query derivation failed, falling back to concept: %v", err)
		return concept
	}
	query := parsePlainText(completion)
	if query == "" {
		return concept
	}
	return query
}

// fanOutLinks queries both providers concurrently. A provider error or a nil
// provider yields an empty list for that provider; fanOutLinks never fails.
func fanOutLinks(ctx context.Context, videos VideoSearcher, web WebSearcher, query string, max int) ([]domain.VideoLink, []domain.WebLink) {
	videoLinks := []domain.VideoLink{}
	webLinks := []domain.WebLink{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if videos == nil {
			return nil
		}
		found, err := videos.SearchVideos(gctx, query, max)
		if err != nil {
			log.Printf("links: video search failed: %v", err)
			return nil
		}
		videoLinks = found
		return nil
	})
	g.Go(func() error {
		if web == nil {
			return nil
		}
		found, err := web.SearchWeb(gctx, query, max)
		if err != nil {
			log.Printf("links: web search failed: %v", err)
			return nil
		}
		webLinks = found
		return nil
	})
	_ = g.Wait()

	if videoLinks == nil {
		videoLinks = []domain.VideoLink{}
	}
	if webLinks == nil {
		webLinks = []domain.WebLink{}
	}
	return videoLinks, webLinks
}
