//go:build e2e

package e2e

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Health(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	resp, err := env.Get("/health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Data))
}

func TestE2E_GraphRejectsBadInput(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("invalid base64", func(t *testing.T) {
		_, err := env.Post("/graphs", map[string]interface{}{"pdf": "not!!!base64"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 400")
	})

	t.Run("valid base64 but not a PDF", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("plain text, no PDF header"))
		_, err := env.Post("/graphs", map[string]interface{}{"pdf": payload})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 422")
	})

	t.Run("missing pdf field", func(t *testing.T) {
		_, err := env.Post("/graphs", map[string]interface{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 400")
	})
}

func TestE2E_DocumentLifecycle(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	documentID := env.SeedDocument(
		"Raft elects a single leader per term; followers grant votes at most once.",
		"Log entries are committed once replicated to a majority of the cluster.",
		"Snapshots compact the log so restarted nodes catch up without full replay.",
	)

	t.Run("title", func(t *testing.T) {
		env.Completions.Enqueue("Raft Consensus Explained")

		resp, err := env.Post(fmt.Sprintf("/documents/%s/title", documentID), map[string]string{})
		require.NoError(t, err)

		var result struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, "Raft Consensus Explained", result.Title)

		// The title prompt must be grounded in this document's chunks.
		assert.Contains(t, env.Completions.LastPrompt(), "elects a single leader")
	})

	t.Run("chat with question", func(t *testing.T) {
		env.Completions.Enqueue("A majority of nodes must replicate the entry.")

		resp, err := env.Post(fmt.Sprintf("/documents/%s/chat", documentID), map[string]string{
			"question": "When is a log entry committed?",
		})
		require.NoError(t, err)

		var result struct {
			Answer string `json:"answer"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, "A majority of nodes must replicate the entry.", result.Answer)
		assert.Contains(t, env.Completions.LastPrompt(), "When is a log entry committed?")
	})

	t.Run("chat without body greets", func(t *testing.T) {
		env.Completions.Enqueue("Hello! This document covers the Raft consensus protocol. Ask me anything.")

		resp, err := env.Post(fmt.Sprintf("/documents/%s/chat", documentID), nil)
		require.NoError(t, err)

		var result struct {
			Answer string `json:"answer"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Contains(t, result.Answer, "Hello")
		assert.Contains(t, env.Completions.LastPrompt(), "greet the user")
	})

	t.Run("explain concept", func(t *testing.T) {
		env.Completions.Enqueue("## Leader Election\n\nRaft elects one leader per term.")
		env.Completions.Enqueue("raft leader election tutorial")

		resp, err := env.Post(fmt.Sprintf("/documents/%s/concepts", documentID), map[string]string{
			"concept": "Leader Election",
		})
		require.NoError(t, err)

		var result struct {
			Concept      string            `json:"concept"`
			Summary      string            `json:"summary"`
			YouTubeLinks []json.RawMessage `json:"youtube_links"`
			WebLinks     []json.RawMessage `json:"web_links"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, "Leader Election", result.Concept)
		assert.Contains(t, result.Summary, "Leader Election")

		// No link providers configured: lists are present and empty, never null.
		assert.NotNil(t, result.YouTubeLinks)
		assert.Empty(t, result.YouTubeLinks)
		assert.NotNil(t, result.WebLinks)
		assert.Empty(t, result.WebLinks)
	})

	t.Run("study path", func(t *testing.T) {
		env.Completions.Enqueue(`{"steps":[
			{"title":"Terms and Elections","summary":"How terms partition time."},
			{"title":"Log Replication","summary":"How entries reach followers."},
			{"title":"Commitment","summary":"Majority replication commits entries."},
			{"title":"Safety","summary":"Why committed entries never change."},
			{"title":"Snapshots","summary":"Compacting the log."}
		]}`)

		resp, err := env.Post(fmt.Sprintf("/documents/%s/study-path", documentID), map[string]string{
			"concept": "Raft",
		})
		require.NoError(t, err)

		var result struct {
			Concept string `json:"concept"`
			Steps   []struct {
				Title string `json:"title"`
			} `json:"steps"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, "Raft", result.Concept)
		require.Len(t, result.Steps, 5)
		assert.Equal(t, "Terms and Elections", result.Steps[0].Title)
		assert.Equal(t, "Snapshots", result.Steps[4].Title)
	})
}

func TestE2E_RetrievalIsDocumentScoped(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	docA := env.SeedDocument("Photosynthesis converts light into chemical energy in chloroplasts.")
	docB := env.SeedDocument("Compilers lower source code through parsing and code generation.")

	env.Completions.Enqueue("Photosynthesis Basics")
	_, err := env.Post(fmt.Sprintf("/documents/%s/title", docA), map[string]string{})
	require.NoError(t, err)

	prompt := env.Completions.LastPrompt()
	assert.Contains(t, prompt, "Photosynthesis converts light")
	assert.NotContains(t, prompt, "Compilers lower source code")

	env.Completions.Enqueue("Compiler Pipeline")
	_, err = env.Post(fmt.Sprintf("/documents/%s/title", docB), map[string]string{})
	require.NoError(t, err)

	prompt = env.Completions.LastPrompt()
	assert.Contains(t, prompt, "Compilers lower source code")
	assert.NotContains(t, prompt, "Photosynthesis converts light")
}

func TestE2E_MalformedModelOutputIsHidden(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	documentID := env.SeedDocument("Some indexed content.")

	env.Completions.Enqueue(`{"steps": [{"broken": true`)

	_, err := env.Post(fmt.Sprintf("/documents/%s/study-path", documentID), map[string]string{
		"concept": "Anything",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	// The raw model output never reaches the client.
	assert.NotContains(t, err.Error(), "broken")
}
