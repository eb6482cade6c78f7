package quiz

// Validator checks an extracted record before it is accepted.
// Implementations must be stateless.
type Validator interface {
	// Name returns a short identifier, e.g. "options".
	Name() string

	// Validate returns nil when q passes.
	Validate(q *QuestionRecord) *ParseError
}

// DefaultValidators returns the standard validation chain.
func DefaultValidators() []Validator {
	return []Validator{
		&PromptValidator{},
		&OptionsValidator{},
		&AnswerValidator{},
	}
}

// PromptValidator rejects records with an empty question stem.
type PromptValidator struct{}

func (v *PromptValidator) Name() string { return FieldQuestion }

func (v *PromptValidator) Validate(q *QuestionRecord) *ParseError {
	if q.Prompt == "" {
		return &ParseError{Field: v.Name(), Message: "question text is empty"}
	}
	return nil
}

// OptionsValidator requires exactly the letters A-D, each with text.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return FieldOptions }

func (v *OptionsValidator) Validate(q *QuestionRecord) *ParseError {
	if len(q.Options) != len(Letters) {
		return newParseError(0, v.Name(), "expected 4 options, got %d", len(q.Options))
	}
	for _, l := range Letters {
		text, ok := q.Options[l]
		if !ok {
			return newParseError(0, v.Name(), "option %s missing", l)
		}
		if text == "" {
			return newParseError(0, v.Name(), "option %s is empty", l)
		}
	}
	return nil
}

// AnswerValidator requires the correct letter to name one of the options.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return FieldConsistency }

func (v *AnswerValidator) Validate(q *QuestionRecord) *ParseError {
	if !q.Correct.Valid() {
		return newParseError(0, FieldCorrect, "correct letter %q is not A-D", q.Correct)
	}
	if _, ok := q.Options[q.Correct]; !ok {
		return newParseError(0, v.Name(), "correct letter %s is not an option", q.Correct)
	}
	return nil
}
