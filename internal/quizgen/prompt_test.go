package quizgen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello"},
		{"multibyte", "héllo wörld", 7, "héllo w"},
		{"no limit", "abc", 0, "abc"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.text, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	transcript := strings.Repeat("a", 6000)
	p := BuildPrompt(transcript, DefaultConfig())

	assert.True(t, strings.HasPrefix(p, "**ROLE**: Expert MCQ Generator\n"))
	assert.Contains(t, p, "\n"+strings.Repeat("a", 5000)+"\n")
	assert.NotContains(t, p, strings.Repeat("a", 5001))
	for _, label := range []string{"[Question_X]", "Difficulty: medium/hard", "Question:", "Options:", "A) ", "D) ", "Correct: Letter only"} {
		assert.Contains(t, p, label)
	}
	assert.True(t, strings.HasSuffix(p, "Generate exactly 7 questions following these rules:"))
}

func TestSplit(t *testing.T) {
	tests := []struct{ count, medium, hard int }{
		{7, 5, 2},
		{4, 3, 1},
		{1, 1, 0},
		{3, 2, 1},
	}
	for _, tt := range tests {
		m, h := split(tt.count)
		assert.Equal(t, tt.medium, m, "count %d", tt.count)
		assert.Equal(t, tt.hard, h, "count %d", tt.count)
	}
}

func TestBuildPrompt_Structured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Structured = true
	p := BuildPrompt("the transcript", cfg)

	assert.Contains(t, p, `{"questions": [...]}`)
	assert.Contains(t, p, "the transcript")
	assert.NotContains(t, p, "[Question_X]")
	assert.True(t, strings.HasSuffix(p, "Return exactly 7 questions and nothing but the JSON object."))
}
