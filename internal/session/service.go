package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/quizgen"
	"github.com/abhisek/tubequiz/internal/transcript"
	"github.com/abhisek/tubequiz/internal/videoid"
)

// DefaultPassThreshold is the minimum score that earns a certificate.
const DefaultPassThreshold = 70.0

// QuizGenerator produces questions from transcript text.
type QuizGenerator interface {
	Generate(ctx context.Context, transcriptText string) (*quizgen.Result, error)
}

// Config controls the session actions.
type Config struct {
	// MinQuestions is the fewest parsed questions that still make a quiz.
	MinQuestions int

	// PassThreshold is the score (0-100) at or above which a submit passes.
	PassThreshold float64
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{MinQuestions: 1, PassThreshold: DefaultPassThreshold}
}

// Outcome summarizes a submit.
type Outcome struct {
	Score   float64
	Correct int
	Total   int
	Passed  bool
}

// Service runs the generate action against its collaborators.
type Service struct {
	fetcher   transcript.Fetcher
	generator QuizGenerator
	config    Config
	logger    *zap.Logger
	newID     func() string
}

// NewService creates a Service. logger may be nil.
func NewService(fetcher transcript.Fetcher, generator QuizGenerator, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinQuestions < 1 {
		cfg.MinQuestions = 1
	}
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = DefaultPassThreshold
	}
	return &Service{
		fetcher:   fetcher,
		generator: generator,
		config:    cfg,
		logger:    logger,
		newID:     func() string { return uuid.New().String() },
	}
}

// Config returns the settings the service was built with.
func (s *Service) Config() Config {
	return s.config
}

// Generate builds a fresh quiz for url. On any failure st is returned
// unchanged together with the error.
func (s *Service) Generate(ctx context.Context, st State, url string) (State, error) {
	next, _, err := s.GenerateDetailed(ctx, st, url)
	return next, err
}

// GenerateDetailed is Generate that also returns the generator output,
// including the raw completion and the dropped blocks. The result is nil
// when generation did not run.
func (s *Service) GenerateDetailed(ctx context.Context, st State, url string) (State, *quizgen.Result, error) {
	id, err := videoid.Extract(url)
	if err != nil {
		return st, nil, err
	}

	log := s.logger.With(zap.String("video_id", id))
	log.Info("fetching transcript")

	tr, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		log.Warn("transcript unavailable", zap.Error(err))
		return st, nil, err
	}

	res, err := s.generator.Generate(ctx, tr.Text)
	if err != nil {
		log.Warn("quiz generation failed", zap.Error(err))
		return st, nil, err
	}

	if len(res.Questions) < s.config.MinQuestions {
		err := &ErrTooFewQuestions{
			Got:     len(res.Questions),
			Want:    s.config.MinQuestions,
			Dropped: len(res.Dropped),
		}
		log.Warn("too few questions", zap.Error(err))
		return st, res, err
	}

	title := strings.TrimSpace(tr.Title)
	if title == "" {
		title = "YouTube Course"
	}

	next := State{
		SessionID: s.newID(),
		VideoID:   id,
		Title:     title,
		Questions: res.Questions,
		Answers:   map[int]quiz.Letter{},
	}
	log.Info("quiz ready",
		zap.String("session_id", next.SessionID),
		zap.Int("questions", len(next.Questions)))
	return next, res, nil
}

// Answer records letter as the answer to question index.
func Answer(st State, index int, letter quiz.Letter) (State, error) {
	if index < 0 || index >= len(st.Questions) {
		return st, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(st.Questions))
	}
	if _, ok := st.Questions[index].Options[letter]; !ok {
		return st, fmt.Errorf("%w: %q", ErrInvalidOption, letter)
	}

	answers := st.cloneAnswers()
	answers[index] = letter
	st.Answers = answers
	return st, nil
}

// Submit scores the answers. An empty quiz scores 0 and does not pass.
func (s *Service) Submit(st State) (State, Outcome) {
	return Submit(st, s.config.PassThreshold)
}

// Submit scores st against threshold.
func Submit(st State, threshold float64) (State, Outcome) {
	score, err := quiz.Score(st.Questions, st.Answers)
	out := Outcome{
		Score:   score,
		Correct: quiz.CountCorrect(st.Questions, st.Answers),
		Total:   len(st.Questions),
		Passed:  err == nil && score >= threshold,
	}
	st.Score = score
	st.Submitted = true
	return st, out
}
