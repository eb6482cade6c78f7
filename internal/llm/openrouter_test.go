package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"})
		assert.Error(t, err)
	})

	t.Run("model passed through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3.1-8b-instruct",
		})
		require.NoError(t, err)
		assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", p.ModelID())
	})
}

// openRouterStub serves one chat completion and records the request body.
func openRouterStub(t *testing.T, content string, got *map[string]any) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-or-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "google/gemini-2.0-flash-001",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 900, "completion_tokens": 300, "total_tokens": 1200},
		})
	}))
	t.Cleanup(server.Close)
	return server.URL + "/api/v1"
}

func TestOpenRouterProvider_TextQuiz(t *testing.T) {
	var body map[string]any
	completion := "[Question_1]\nDifficulty: medium\nQuestion: What is shown?\nOptions:\nA) a\nB) b\nC) c\nD) d\nCorrect: A\n"
	baseURL := openRouterStub(t, completion, &body)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-001", BaseURL: baseURL})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), UserPrompt("Create 1 MCQ from this text"))
	require.NoError(t, err)
	assert.Equal(t, completion, resp.Text)
	assert.Equal(t, 900, resp.Usage.InputTokens)
	assert.Equal(t, 300, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "google/gemini-2.0-flash-001", body["model"])
	assert.NotContains(t, body, "response_format")
}

func TestOpenRouterProvider_SchemaRequest(t *testing.T) {
	schema := &Schema{
		Name: "test-openrouter-letters",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"correct": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}}},
			"required":   []any{"correct"},
		},
	}

	t.Run("valid document", func(t *testing.T) {
		var body map[string]any
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", BaseURL: openRouterStub(t, `{"correct":"C"}`, &body)})
		require.NoError(t, err)

		req := UserPrompt("Pick one")
		req.Schema = schema
		resp, err := p.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"correct":"C"}`, string(resp.JSON()))

		format, ok := body["response_format"].(map[string]any)
		require.True(t, ok, "response_format missing")
		assert.Equal(t, "json_schema", format["type"])
	})

	t.Run("document outside schema", func(t *testing.T) {
		var body map[string]any
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", BaseURL: openRouterStub(t, `{"correct":"E"}`, &body)})
		require.NoError(t, err)

		req := UserPrompt("Pick one")
		req.Schema = schema
		_, err = p.Generate(context.Background(), req)
		var invErr *ErrInvalidResponse
		assert.True(t, errors.As(err, &invErr), "got %v", err)
	})
}
