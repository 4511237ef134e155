package service

import (
	"context"
	"strings"
	"sync"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// StudyPath is an ordered learning progression for one complex concept, each
// step enriched with external resources.
type StudyPath struct {
	Concept string                `json:"concept"`
	Steps   []domain.LearningStep `json:"steps"`
}

// pathOutline is the structured completion shape before link enrichment.
type pathOutline struct {
	Steps []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	} `json:"steps"`
}

// StudyPathService decomposes a concept into an ordered learning path.
type StudyPathService struct {
	retriever   Retriever
	completions CompletionClient
	videos      VideoSearcher
	web         WebSearcher
}

// NewStudyPathService creates a StudyPathService. Nil searchers leave the
// corresponding link lists empty.
func NewStudyPathService(retriever Retriever, completions CompletionClient, videos VideoSearcher, web WebSearcher) *StudyPathService {
	return &StudyPathService{
		retriever:   retriever,
		completions: completions,
		videos:      videos,
		web:         web,
	}
}

// BuildStudyPath retrieves broad context for the concept, generates an ordered
// step outline, then enriches every step with external links concurrently.
// Step order is preserved and one step's enrichment failure never blocks
// another; enrichment failures only empty that step's lists.
func (s *StudyPathService) BuildStudyPath(ctx context.Context, documentID, concept string) (*StudyPath, error) {
	ctx, span := telemetry.StartSpan(ctx, "StudyPathService.BuildStudyPath", telemetry.SpanAttributes{
		DocumentID: documentID,
		Concept:    concept,
		Operation:  "study_path",
	})
	defer span.End()

	if documentID == "" {
		return nil, domain.ErrNoDocumentID
	}
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, domain.ErrNoConcept
	}

	result, err := s.retriever.Retrieve(ctx, concept, documentID, PathRetrievalTopK)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	prompt := buildPrompt(taskStudyPath, promptParams{
		Concept:  concept,
		MinSteps: DefaultMinPathSteps,
		MaxSteps: DefaultMaxPathSteps,
	}, serializeContext(result))

	profile := profileFor(taskStudyPath)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		span.SetError(err)
		return nil, domain.CompletionError(err)
	}

	var outline pathOutline
	if err := parseStructured(completion, &outline); err != nil {
		span.SetError(err)
		return nil, err
	}

	steps := make([]domain.LearningStep, 0, len(outline.Steps))
	for _, o := range outline.Steps {
		title := strings.TrimSpace(o.Title)
		if title == "" {
			continue
		}
		steps = append(steps, domain.LearningStep{
			Title:        title,
			Summary:      strings.TrimSpace(o.Summary),
			YouTubeLinks: []domain.VideoLink{},
			WebLinks:     []domain.WebLink{},
		})
	}
	if len(steps) == 0 {
		return nil, domain.MalformedOutputError(completion, domain.ErrEmptyPath)
	}

	s.enrichSteps(ctx, concept, steps)

	return &StudyPath{
		Concept: concept,
		Steps:   steps,
	}, nil
}

// enrichSteps attaches external links to every step in parallel. Each step
// searches for its own title scoped by the concept, writing into its own slot
// so ordering survives concurrency.
func (s *StudyPathService) enrichSteps(ctx context.Context, concept string, steps []domain.LearningStep) {
	var wg sync.WaitGroup
	for i := range steps {
		wg.Add(1)
		go func(step *domain.LearningStep) {
			defer wg.Done()
			query := step.Title + " " + concept
			step.YouTubeLinks, step.WebLinks = fanOutLinks(ctx, s.videos, s.web, query, DefaultMaxLinks)
		}(&steps[i])
	}
	wg.Wait()
}
