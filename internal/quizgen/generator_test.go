package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/quiz"
)

func block(n int, correct string) string {
	return fmt.Sprintf(`[Question_%d]
Difficulty: medium
Question: What is point %d?
Options:
A) one
B) two
C) three
D) four
Correct: %s
`, n, n, correct)
}

func TestGenerate_ParsesCompletion(t *testing.T) {
	raw := "Sure!\n" + block(1, "A") + block(2, "B") + "[Question_3]\nDifficulty: medium\nQuestion: broken\n" + block(4, "D")
	mock := llm.NewMockProvider(llm.MockResponse{Text: raw})
	gen := New(mock, DefaultConfig(), nil)

	res, err := gen.Generate(context.Background(), "the transcript")
	require.NoError(t, err)

	require.Len(t, res.Questions, 3)
	assert.Equal(t, "What is point 1?", res.Questions[0].Prompt)
	assert.Equal(t, quiz.LetterB, res.Questions[1].Correct)
	assert.Equal(t, "What is point 4?", res.Questions[2].Prompt)
	assert.Equal(t, raw, res.Raw)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, 2, res.Dropped[0].Block)
}

func TestGenerate_SendsSinglePrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: block(1, "A")})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "gophers love channels")
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "gophers love channels")
	assert.Contains(t, req.Messages[0].Content, "Create 7 high-quality MCQs (5 medium, 2 hard)")
	assert.Nil(t, req.Schema)
}

func TestGenerate_ProviderErrorNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockResponse{Text: block(1, "A")},
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), "text")
	var rl *llm.ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	for _, text := range []string{"", "  \n\t"} {
		mock := llm.NewMockProvider(llm.MockResponse{Text: text})
		_, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), "text")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	}
}

func TestGenerate_NoBlocksIsNotAnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "I cannot do that."})
	res, err := New(mock, DefaultConfig(), nil).Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, res.Questions)
	assert.Empty(t, res.Dropped)
}

func TestGenerate_QuestionCountCapsResult(t *testing.T) {
	var raw strings.Builder
	for i := 1; i <= 9; i++ {
		raw.WriteString(block(i, "C"))
	}

	cfg := DefaultConfig()
	cfg.QuestionCount = 4
	mock := llm.NewMockProvider(llm.MockResponse{Text: raw.String()})
	res, err := New(mock, cfg, nil).Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Len(t, res.Questions, 4)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Create 4 high-quality MCQs (3 medium, 1 hard)")

	cfg.QuestionCount = 50
	mock = llm.NewMockProvider(llm.MockResponse{Text: raw.String()})
	res, err = New(mock, cfg, nil).Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Len(t, res.Questions, quiz.MaxQuestions)
}

func TestGenerate_LenientDifficulty(t *testing.T) {
	raw := strings.Replace(block(1, "A"), "Difficulty: medium\n", "", 1)

	strict := New(llm.NewMockProvider(llm.MockResponse{Text: raw}), DefaultConfig(), nil)
	res, err := strict.Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, res.Questions)

	cfg := DefaultConfig()
	cfg.LenientDifficulty = true
	lenient := New(llm.NewMockProvider(llm.MockResponse{Text: raw}), cfg, nil)
	res, err = lenient.Generate(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, quiz.DifficultyMedium, res.Questions[0].Difficulty)
}

func TestGenerate_PurposeLabel(t *testing.T) {
	var purpose string
	p := purposeSpy{fn: func(ctx context.Context) { purpose = llm.PurposeFrom(ctx) }}
	_, _ = New(p, DefaultConfig(), nil).Generate(context.Background(), "text")
	assert.Equal(t, llm.PurposeQuizGen, purpose)
}

type purposeSpy struct {
	fn func(ctx context.Context)
}

func (s purposeSpy) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	s.fn(ctx)
	return &llm.Response{Text: "x"}, nil
}

func (s purposeSpy) ModelID() string { return "spy" }
