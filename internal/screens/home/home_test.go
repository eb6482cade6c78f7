package home

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/router"
	sess "github.com/abhisek/tubequiz/internal/session"
	"github.com/abhisek/tubequiz/internal/transcript"
)

type stubGenerator struct {
	state sess.State
	err   error
	urls  []string
}

func (g *stubGenerator) Generate(_ context.Context, st sess.State, url string) (sess.State, error) {
	g.urls = append(g.urls, url)
	if g.err != nil {
		return st, g.err
	}
	return g.state, nil
}

func readyState() sess.State {
	return sess.State{
		SessionID: "s1",
		VideoID:   "dQw4w9WgXcQ",
		Title:     "Intro to Go",
		Questions: []quiz.QuestionRecord{{
			Difficulty: quiz.DifficultyMedium,
			Prompt:     "What is Go?",
			Options:    map[quiz.Letter]string{"A": "a language", "B": "a game", "C": "a verb", "D": "a dog"},
			Correct:    "A",
		}},
		Answers: map[int]quiz.Letter{},
	}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestHome_InvalidURLShowsInlineError(t *testing.T) {
	gen := &stubGenerator{}
	h := New(gen, 70, nil, "https://example.com/video")

	_, cmd := h.Update(enter())
	assert.Nil(t, cmd)
	assert.False(t, h.Loading())
	assert.Contains(t, h.View(100, 30), "Invalid YouTube URL")
	assert.Empty(t, gen.urls, "no generate call for a bad URL")
}

func TestHome_ValidURLStartsLoading(t *testing.T) {
	gen := &stubGenerator{state: readyState()}
	h := New(gen, 70, nil, "https://youtu.be/dQw4w9WgXcQ")

	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, h.Loading())
	assert.Contains(t, h.View(100, 30), "Fetching transcript and generating questions")

	// Keys are ignored while generating.
	_, cmd = h.Update(enter())
	assert.Nil(t, cmd)
}

func TestHome_QuizReadyPushesQuiz(t *testing.T) {
	h := New(&stubGenerator{}, 70, nil, "")
	h.loading = true

	_, cmd := h.Update(quizReadyMsg{State: readyState()})
	require.NotNil(t, cmd)
	assert.False(t, h.Loading())

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Quiz", push.Screen.Title())
}

func TestHome_GenerateErrorIsShown(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transcript", &transcript.ErrUnavailable{VideoID: "x", Err: errors.New("captions disabled")}, "Error fetching transcript: captions disabled"},
		{"too few", &sess.ErrTooFewQuestions{Got: 0, Want: 1, Dropped: 7}, "Could not build a quiz"},
		{"llm", errors.New("quiz generation failed: boom"), "Error generating questions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&stubGenerator{}, 70, nil, "")
			h.loading = true

			_, cmd := h.Update(quizReadyMsg{Err: tt.err})
			assert.Nil(t, cmd)
			assert.False(t, h.Loading())
			assert.Contains(t, h.errMsg, tt.want)
		})
	}
}

func TestHome_KeyHints(t *testing.T) {
	h := New(&stubGenerator{}, 70, nil, "")
	assert.Len(t, h.KeyHints(), 2)
	h.loading = true
	assert.Len(t, h.KeyHints(), 1)
}
