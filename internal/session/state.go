// Package session holds quiz state and the actions that move it forward.
// State is a value: every action takes a State and returns a new one.
package session

import (
	"maps"

	"github.com/abhisek/tubequiz/internal/quiz"
)

// State is one learner's quiz in progress.
type State struct {
	// SessionID identifies the quiz attempt; it changes on every generate.
	SessionID string

	// VideoID and Title describe the source video.
	VideoID string
	Title   string

	// Questions holds at most quiz.MaxQuestions records.
	Questions []quiz.QuestionRecord

	// Answers maps a question index to the selected letter. Keys are
	// always valid indices into Questions.
	Answers map[int]quiz.Letter

	// Score is the percentage from the last submit.
	Score float64

	// Submitted is set once the answers have been scored.
	Submitted bool
}

// HasQuiz reports whether there are questions to answer.
func (s State) HasQuiz() bool {
	return len(s.Questions) > 0
}

// Answered returns the number of questions with a selected answer.
func (s State) Answered() int {
	return len(s.Answers)
}

// AnswerFor returns the selected letter for question i, if any.
func (s State) AnswerFor(i int) (quiz.Letter, bool) {
	l, ok := s.Answers[i]
	return l, ok
}

// Reset clears answers and score while keeping the questions, for a retake.
func (s State) Reset() State {
	s.Answers = map[int]quiz.Letter{}
	s.Score = 0
	s.Submitted = false
	return s
}

func (s State) cloneAnswers() map[int]quiz.Letter {
	if s.Answers == nil {
		return map[int]quiz.Letter{}
	}
	return maps.Clone(s.Answers)
}
