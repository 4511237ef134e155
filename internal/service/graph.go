package service

import (
	"context"

	"github.com/cartograph-ai/cartograph/internal/domain"
	"github.com/cartograph-ai/cartograph/internal/telemetry"
)

// CompletionClient defines the interface for one-shot text generation.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// Retriever issues document-scoped semantic queries.
type Retriever interface {
	Retrieve(ctx context.Context, query, documentID string, topK int) (domain.RetrievalResult, error)
}

// Ingestor materializes chunk batches into the index under a fresh identity.
type Ingestor interface {
	Ingest(ctx context.Context, batches [][]string) (string, error)
}

// GraphConfig carries the caller's sizing hints for graph generation.
type GraphConfig struct {
	MainConcepts int
	NodeCount    int
}

// GraphResult is the pipeline output: the parsed graph plus the document
// identity every later task must filter on.
type GraphResult struct {
	Graph      domain.KnowledgeGraph
	DocumentID string
}

// GraphService runs the document-to-knowledge-graph pipeline: extract,
// sanitize, chunk, index, retrieve, prompt, complete, parse. Any stage
// failure fails the whole call; there is no partial-graph result.
type GraphService struct {
	ingest      Ingestor
	retriever   Retriever
	completions CompletionClient
	chunkCfg    ChunkConfig

	// extract is swappable so the pipeline can be exercised without real
	// document bytes.
	extract func(raw []byte) (string, error)
}

// NewGraphService creates a GraphService with default chunking.
func NewGraphService(ingest Ingestor, retriever Retriever, completions CompletionClient) *GraphService {
	return NewGraphServiceWithConfig(ingest, retriever, completions, DefaultChunkConfig())
}

// NewGraphServiceWithConfig creates a GraphService with explicit chunking
// configuration.
func NewGraphServiceWithConfig(ingest Ingestor, retriever Retriever, completions CompletionClient, chunkCfg ChunkConfig) *GraphService {
	return &GraphService{
		ingest:      ingest,
		retriever:   retriever,
		completions: completions,
		chunkCfg:    chunkCfg,
		extract:     extractText,
	}
}

// GenerateGraph ingests a base64-encoded PDF and produces its knowledge
// graph. The returned document identity seeds every later task-specific
// operation against the same document.
func (s *GraphService) GenerateGraph(ctx context.Context, pdfBase64 string, cfg GraphConfig) (*GraphResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "GraphService.GenerateGraph", telemetry.SpanAttributes{
		Operation: "generate_graph",
	})
	defer span.End()

	raw, err := decodeDocument(pdfBase64)
	if err != nil {
		return nil, err
	}

	text, err := s.extract(raw)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	clean := sanitizeText(text)
	chunks := chunkText(clean, s.chunkCfg)
	batches := batchChunks(chunks, s.chunkCfg)

	documentID, err := s.ingest.Ingest(ctx, batches)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	result, err := s.retriever.Retrieve(ctx, graphRetrievalQuery, documentID, DefaultRetrievalTopK)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	prompt := buildPrompt(taskGraph, promptParams{
		MainConcepts: cfg.MainConcepts,
		NodeCount:    cfg.NodeCount,
	}, serializeContext(result))

	profile := profileFor(taskGraph)
	completion, err := s.completions.Complete(ctx, prompt, profile.maxTokens, profile.temperature)
	if err != nil {
		span.SetError(err)
		return nil, domain.CompletionError(err)
	}

	var graph domain.KnowledgeGraph
	if err := parseStructured(completion, &graph); err != nil {
		span.SetError(err)
		return nil, err
	}

	if err := graph.Validate(); err != nil {
		span.SetError(err)
		return nil, err
	}

	return &GraphResult{
		Graph:      graph,
		DocumentID: documentID,
	}, nil
}
