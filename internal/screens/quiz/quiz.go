// Package quiz is the screen that walks the learner through the questions
// one at a time.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/tubequiz/internal/quiz"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	"github.com/abhisek/tubequiz/internal/screens/result"
	sess "github.com/abhisek/tubequiz/internal/session"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// QuizScreen implements screen.Screen for answering a generated quiz.
type QuizScreen struct {
	state     sess.State
	index     int
	mc        components.MultiChoice
	threshold float64
	issuer    result.Issuer
	confirm   bool // submit pressed with unanswered questions
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for st. issuer is handed to the result screen.
func New(st sess.State, threshold float64, issuer result.Issuer) *QuizScreen {
	s := &QuizScreen{
		state:     st,
		threshold: threshold,
		issuer:    issuer,
	}
	s.load()
	return s
}

// State returns the quiz state with the answers given so far.
func (s *QuizScreen) State() sess.State {
	return s.state
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d/%d answered", s.state.Answered(), len(s.state.Questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit anyway"},
			{Key: "N", Description: "Keep answering"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "A-D/Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Home"},
	}
}

// load points the multiple-choice component at the current question.
func (s *QuizScreen) load() {
	if !s.state.HasQuiz() {
		return
	}
	q := s.state.Questions[s.index]

	choices := make([]components.Choice, 0, len(qz.Letters))
	chosen := -1
	answer, answered := s.state.AnswerFor(s.index)
	for _, l := range qz.Letters {
		text, ok := q.Options[l]
		if !ok {
			continue
		}
		if answered && l == answer {
			chosen = len(choices)
		}
		choices = append(choices, components.Choice{Letter: string(l), Text: text})
	}
	s.mc = components.NewMultiChoice(q.Prompt, choices, chosen)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.state.HasQuiz() {
		return s, nil
	}

	if s.confirm {
		switch kmsg.String() {
		case "y", "Y":
			s.confirm = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.move(-1)
		return s, nil
	case "right", "l", "tab":
		s.move(1)
		return s, nil
	case "s", "S":
		if s.state.Answered() < len(s.state.Questions) {
			s.confirm = true
			return s, nil
		}
		return s, s.submit()
	}

	before := s.mc.Chosen
	s.mc, _ = s.mc.Update(kmsg)
	if s.mc.Chosen != before {
		if letter, ok := s.mc.ChosenLetter(); ok {
			if st, err := sess.Answer(s.state, s.index, qz.Letter(letter)); err == nil {
				s.state = st
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) move(delta int) {
	next := s.index + delta
	if next < 0 || next >= len(s.state.Questions) {
		return
	}
	s.index = next
	s.load()
}

// submit scores the quiz and swaps this screen for its result.
func (s *QuizScreen) submit() tea.Cmd {
	st, out := sess.Submit(s.state, s.threshold)
	s.state = st

	threshold, issuer := s.threshold, s.issuer
	retake := func(prev sess.State) screen.Screen {
		return New(prev.Reset(), threshold, issuer)
	}
	next := result.New(st, out, threshold, issuer, retake)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) View(width, height int) string {
	if !s.state.HasQuiz() {
		return layout.Center(theme.Hint.Render("This quiz has no questions."), width, height)
	}

	contentWidth := min(width-8, 96)
	q := s.state.Questions[s.index]

	var b strings.Builder
	b.WriteString(theme.Title.Width(contentWidth).Render(s.state.Title))
	b.WriteString("\n\n")

	caption := fmt.Sprintf("Question %d of %d  ", s.index+1, len(s.state.Questions))
	b.WriteString(theme.Hint.Render(caption))
	b.WriteString(theme.DifficultyBadge(string(q.Difficulty)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(s.mc.View()))
	b.WriteString("\n")

	bar := components.NewProgressBar("Answered", s.state.Answered(), len(s.state.Questions), contentWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if s.confirm {
		left := len(s.state.Questions) - s.state.Answered()
		b.WriteString(theme.ErrorText.Render(fmt.Sprintf(
			"%d question(s) unanswered count as wrong. Submit anyway? (y/n)", left)))
	}

	return lipgloss.NewStyle().PaddingLeft(max((width-contentWidth)/2, 0)).Render(b.String())
}
