package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_HappyPath(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3.1",
			"created_at":        "2026-01-01T00:00:00Z",
			"message":           map[string]any{"role": "assistant", "content": sampleQuiz},
			"done":              true,
			"prompt_eval_count": 120,
			"eval_count":        80,
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{ServerURL: server.URL, Model: "llama3.1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), UserPrompt("quiz me"))
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz, resp.Text)
	assert.Equal(t, 120, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.OutputTokens)
	assert.Equal(t, "llama3.1", p.ModelID())
	assert.Equal(t, "llama3.1", gotBody["model"])
}

func TestOllamaProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model \"llama3.1\" not found"}` + "\n"))
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{ServerURL: server.URL, Model: "llama3.1"})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), UserPrompt("quiz me"))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestNewOllamaProvider_RequiresServerAndModel(t *testing.T) {
	_, err := NewOllamaProvider(OllamaConfig{Model: "llama3.1"})
	assert.Error(t, err)
	_, err = NewOllamaProvider(OllamaConfig{ServerURL: "http://localhost:11434"})
	assert.Error(t, err)
}

func TestOllamaProvider_JSONMode(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.1",
			"message": map[string]any{"role": "assistant", "content": "```json\n{\"correct\":\"B\"}\n```"},
			"done":    true,
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{ServerURL: server.URL, Model: "llama3.1"})
	require.NoError(t, err)

	req := UserPrompt("pick one")
	req.Schema = &Schema{
		Name: "test-ollama-letter",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"correct": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}}},
			"required":   []any{"correct"},
		},
	}
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"correct":"B"}`, resp.Text)
	assert.Equal(t, "json", gotBody["format"])
	assert.Equal(t, StopEnd, resp.StopReason)
}
