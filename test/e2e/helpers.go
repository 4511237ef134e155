//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cartograph-ai/cartograph/internal/api/handlers"
	"github.com/cartograph-ai/cartograph/internal/repository"
	"github.com/cartograph-ai/cartograph/internal/server"
	"github.com/cartograph-ai/cartograph/internal/service"
	"github.com/cartograph-ai/cartograph/internal/testutil"
)

const embeddingDims = 1536

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T           *testing.T
	Ctx         context.Context
	PostgresC   *testutil.PostgresContainer
	Pool        *pgxpool.Pool
	Server      *httptest.Server
	Completions *ScriptedCompletions
	Ingest      *service.IngestService
	HTTPClient  *http.Client
}

// ScriptedCompletions replays queued responses in FIFO order and records every
// prompt it received, so tests can assert on retrieval context without a live
// model.
type ScriptedCompletions struct {
	mu      sync.Mutex
	queue   []string
	Prompts []string
}

func (s *ScriptedCompletions) Enqueue(response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, response)
}

func (s *ScriptedCompletions) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.queue) == 0 {
		return "", fmt.Errorf("no scripted completion queued for prompt: %.80s", prompt)
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	return next, nil
}

// LastPrompt returns the most recent prompt, or "" if none were recorded.
func (s *ScriptedCompletions) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Prompts) == 0 {
		return ""
	}
	return s.Prompts[len(s.Prompts)-1]
}

// hashEmbedder maps each distinct text to a deterministic unit vector, so the
// same text always embeds identically and similarity search works without an
// embedding provider.
type hashEmbedder struct{}

func (hashEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, embeddingDims)
	var norm float64
	for i := range vec {
		vec[i] = rng.NormFloat64()
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)

	out := make([]float32, embeddingDims)
	for i := range vec {
		out[i] = float32(vec[i] / norm)
	}
	return out, nil
}

// SetupE2EEnv starts a pgvector container, runs migrations, and serves the
// full router in-process with a scripted model client and no link providers.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	completions := &ScriptedCompletions{}
	chunkRepo := repository.NewChunkRepository(pool, hashEmbedder{})

	ingestSvc := service.NewIngestServiceWithConfig(chunkRepo, &service.DefaultUUIDGenerator{}, service.IngestConfig{
		ReadyTimeout: 5 * time.Second,
		ReadyPoll:    50 * time.Millisecond,
	})
	retrievalSvc := service.NewRetrievalService(chunkRepo)

	graphSvc := service.NewGraphService(ingestSvc, retrievalSvc, completions)
	titleSvc := service.NewTitleService(retrievalSvc, completions)
	chatSvc := service.NewChatService(retrievalSvc, completions)
	conceptSvc := service.NewConceptService(retrievalSvc, completions, nil, nil)
	pathSvc := service.NewStudyPathService(retrievalSvc, completions, nil, nil)

	router := server.NewRouter(server.RouterConfig{
		GraphHandler:    handlers.NewGraphHandler(graphSvc),
		DocumentHandler: handlers.NewDocumentHandler(titleSvc, chatSvc, conceptSvc, pathSvc),
	})

	srv := httptest.NewServer(router)

	return &E2ETestEnv{
		T:           t,
		Ctx:         ctx,
		PostgresC:   pgC,
		Pool:        pool,
		Server:      srv,
		Completions: completions,
		Ingest:      ingestSvc,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.Server != nil {
		e.Server.Close()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// SeedDocument indexes the given chunks as one document and returns its ID.
func (e *E2ETestEnv) SeedDocument(chunks ...string) string {
	documentID, err := e.Ingest.Ingest(e.Ctx, [][]string{chunks})
	if err != nil {
		e.T.Fatalf("failed to seed document: %v", err)
	}
	return documentID
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil)
}

// Post performs a POST request. A nil body sends no payload at all.
func (e *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, error) {
	return e.doRequest("POST", path, body)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}) (*APIResponse, error) {
	url := e.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}
