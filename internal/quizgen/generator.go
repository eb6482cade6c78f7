// Package quizgen turns a transcript into quiz questions through an LLM.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("empty response from the generation service")

// Result is the outcome of one generation call.
type Result struct {
	// Questions are the accepted records, in order, at most QuestionCount.
	Questions []quiz.QuestionRecord

	// Raw is the model output as returned.
	Raw string

	// Dropped lists the blocks the parser rejected.
	Dropped []*quiz.ParseError
}

// Generator asks the model for a quiz and parses the reply.
type Generator struct {
	provider llm.Provider
	config   Config
	parser   quiz.Parser
	logger   *zap.Logger
}

// New creates a Generator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.normalized()
	return &Generator{
		provider: provider,
		config:   cfg,
		parser: quiz.Parser{
			LenientDifficulty: cfg.LenientDifficulty,
			Validators:        quiz.DefaultValidators(),
			Limit:             cfg.QuestionCount,
		},
		logger: logger,
	}
}

// Generate sends one prompt built from transcriptText and parses the reply.
// Provider errors are returned wrapped; nothing is retried.
func (g *Generator) Generate(ctx context.Context, transcriptText string) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.UserPrompt(BuildPrompt(transcriptText, g.config))
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature
	if g.config.Structured {
		req.Schema = QuizSchema
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return nil, ErrEmptyCompletion
	}

	text := resp.Text
	if g.config.Structured {
		text, err = renderStructured(resp.Text)
		if err != nil {
			return nil, fmt.Errorf("quiz generation failed: %w", err)
		}
	}

	results := g.parser.ParseBlocks(text)
	out := &Result{
		Questions: quiz.Records(results, g.parser.Limit),
		Raw:       resp.Text,
		Dropped:   quiz.Failures(results),
	}

	for _, perr := range out.Dropped {
		g.logger.Debug("dropped malformed question block",
			zap.Int("block", perr.Block),
			zap.String("field", perr.Field),
			zap.String("reason", perr.Message))
	}

	g.logger.Info("quiz generated",
		zap.Int("blocks", len(results)),
		zap.Int("questions", len(out.Questions)),
		zap.Int("dropped", len(out.Dropped)))

	return out, nil
}
