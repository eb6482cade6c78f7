package quiz

// MaxQuestions is the upper bound on questions kept from a single generation.
const MaxQuestions = 7

// Difficulty is the self-reported difficulty of a question.
type Difficulty string

const (
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Letter identifies one of the four answer options.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option letters in display order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// Valid reports whether l is one of A, B, C or D.
func (l Letter) Valid() bool {
	switch l {
	case LetterA, LetterB, LetterC, LetterD:
		return true
	}
	return false
}

// QuestionRecord is a validated multiple-choice question.
type QuestionRecord struct {
	// Difficulty is Medium or Hard.
	Difficulty Difficulty

	// Prompt is the question stem shown to the user. Never empty.
	Prompt string

	// Options maps each of the four letters A-D to its option text.
	Options map[Letter]string

	// Correct is the letter of the right option. Always a key of Options.
	Correct Letter
}

// Option returns the text for the given letter and whether it exists.
func (q QuestionRecord) Option(l Letter) (string, bool) {
	text, ok := q.Options[l]
	return text, ok
}
