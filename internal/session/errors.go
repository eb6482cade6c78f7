package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned when answering a question that does not exist.
	ErrInvalidIndex = errors.New("question index out of range")

	// ErrInvalidOption is returned when the letter is not one of the options.
	ErrInvalidOption = errors.New("answer is not one of the options")
)

// ErrTooFewQuestions is returned when the model output yields fewer usable
// questions than required.
type ErrTooFewQuestions struct {
	Got     int
	Want    int
	Dropped int
}

func (e *ErrTooFewQuestions) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("no valid questions could be parsed from the generated quiz (%d blocks dropped)", e.Dropped)
	}
	return fmt.Sprintf("only %d valid questions parsed, need at least %d", e.Got, e.Want)
}
