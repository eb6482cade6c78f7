package quizgen

import "github.com/abhisek/tubequiz/internal/quiz"

// Config controls the behavior of the Generator.
type Config struct {
	// QuestionCount is the number of questions requested from the model.
	// Values above quiz.MaxQuestions are clamped.
	QuestionCount int

	// ExcerptChars is how much of the transcript goes into the prompt.
	ExcerptChars int

	// LenientDifficulty defaults a missing Difficulty label to Medium
	// instead of dropping the block.
	LenientDifficulty bool

	// Structured asks for JSON matching QuizSchema instead of the
	// [Question_N] text format.
	Structured bool

	// MaxTokens is the token budget for the completion. Zero leaves the
	// provider default.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		QuestionCount: quiz.MaxQuestions,
		ExcerptChars:  5000,
		Temperature:   0.7,
	}
}

func (c Config) normalized() Config {
	if c.QuestionCount <= 0 || c.QuestionCount > quiz.MaxQuestions {
		c.QuestionCount = quiz.MaxQuestions
	}
	if c.ExcerptChars <= 0 {
		c.ExcerptChars = DefaultConfig().ExcerptChars
	}
	return c
}
