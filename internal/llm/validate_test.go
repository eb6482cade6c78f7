package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerSchema() *Schema {
	return &Schema{
		Name:        "test-answer",
		Description: "One graded answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"index":    map[string]any{"type": "integer", "minimum": 0},
				"letter":   map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			},
			"required": []any{"question", "letter"},
		},
	}
}

func TestValidateJSON_Accepts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"question":"What is DNS?","letter":"B"}`, `{"question":"What is DNS?","letter":"B"}`},
		{"optional field", `{"question":"q","index":3,"letter":"D"}`, `{"question":"q","index":3,"letter":"D"}`},
		{"fenced", "```json\n{\"question\":\"q\",\"letter\":\"A\"}\n```", `{"question":"q","letter":"A"}`},
		{"surrounding space", "  {\"question\":\"q\",\"letter\":\"C\"}\n", `{"question":"q","letter":"C"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateJSON(answerSchema(), tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"question":"q"}`},
		{"wrong type", `{"question":"q","letter":"A","index":"three"}`},
		{"letter outside enum", `{"question":"q","letter":"E"}`},
		{"empty question", `{"question":"","letter":"A"}`},
		{"not JSON", `Here is your quiz: [Question_1]`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJSON(answerSchema(), tt.raw)
			require.Error(t, err)

			var invErr *ErrInvalidResponse
			require.True(t, errors.As(err, &invErr), "got %T", err)
			assert.Equal(t, tt.raw, string(invErr.Content))
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	got, err := ValidateJSON(nil, "[Question_1]\nfree text")
	require.NoError(t, err)
	assert.Equal(t, "[Question_1]\nfree text", got)
}

func TestValidateJSON_NestedArray(t *testing.T) {
	schema := &Schema{
		Name: "test-answer-sheet",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answers": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":    "string",
						"pattern": "^[A-D]$",
					},
				},
			},
			"required": []any{"answers"},
		},
	}

	_, err := ValidateJSON(schema, `{"answers":["A","C","D"]}`)
	require.NoError(t, err)

	_, err = ValidateJSON(schema, `{"answers":["A","F"]}`)
	assert.Error(t, err)

	_, err = ValidateJSON(schema, `{"answers":[]}`)
	assert.Error(t, err)
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripFence(tt.in), tt.in)
	}
}
