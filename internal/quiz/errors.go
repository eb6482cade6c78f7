package quiz

import (
	"errors"
	"fmt"
)

// Field names reported in ParseError.
const (
	FieldDifficulty  = "difficulty"
	FieldQuestion    = "question"
	FieldOptions     = "options"
	FieldCorrect     = "correct"
	FieldConsistency = "consistency"
)

// ErrNoQuestions is returned when scoring a quiz with no questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// ParseError describes why a candidate block was rejected.
type ParseError struct {
	Block   int    // zero-based index of the block after the preamble
	Field   string // field that failed extraction or validation
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("block %d: %s: %s", e.Block, e.Field, e.Message)
}

func newParseError(block int, field, format string, args ...any) *ParseError {
	return &ParseError{
		Block:   block,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
