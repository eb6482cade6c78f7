// Package result shows the score of a submitted quiz and issues the
// certificate when the learner passed.
package result

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/certificate"
	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	sess "github.com/abhisek/tubequiz/internal/session"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// Issuer creates certificates.
type Issuer interface {
	Issue(ctx context.Context, req certificate.Request) (*certificate.Certificate, error)
}

// RetakeFunc builds the screen used to answer the same questions again.
type RetakeFunc func(st sess.State) screen.Screen

// issuedMsg carries the result of a certificate request.
type issuedMsg struct {
	Cert *certificate.Certificate
	Err  error
}

// ResultScreen implements screen.Screen for a submitted quiz.
type ResultScreen struct {
	state     sess.State
	outcome   sess.Outcome
	threshold float64
	issuer    Issuer
	retake    RetakeFunc

	input   components.TextInput
	menu    components.Menu
	naming  bool // name input has focus
	issuing bool
	cert    *certificate.Certificate
	errMsg  string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. issuer may be nil, in which case passing
// learners are told certificates are unavailable.
func New(st sess.State, out sess.Outcome, threshold float64, issuer Issuer, retake RetakeFunc) *ResultScreen {
	s := &ResultScreen{
		state:     st,
		outcome:   out,
		threshold: threshold,
		issuer:    issuer,
		retake:    retake,
		input:     components.NewTextInput("Your full name", 64),
	}
	s.naming = out.Passed && issuer != nil
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retake this quiz", Shortcut: "r", Action: s.retakeCmd, Disabled: retake == nil},
		{Label: "Quiz another video", Action: func() tea.Cmd { return popToRoot }},
	})
	return s
}

func popToRoot() tea.Msg { return router.PopToRootMsg{} }

func (s *ResultScreen) retakeCmd() tea.Cmd {
	if s.retake == nil {
		return nil
	}
	next := s.retake(s.state)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.naming {
		return s.input.Init()
	}
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if s.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Get certificate"},
			{Key: "Tab", Description: "Menu"},
			{Key: "Esc", Description: "Home"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Retake"},
	}
	if s.canIssue() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Name"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

// canIssue reports whether a certificate can still be requested.
func (s *ResultScreen) canIssue() bool {
	return s.outcome.Passed && s.issuer != nil && s.cert == nil
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case issuedMsg:
		s.issuing = false
		if msg.Err != nil {
			s.errMsg = describeIssueError(msg.Err)
			return s, nil
		}
		s.cert = msg.Cert
		s.naming = false
		return s, nil

	case tea.KeyMsg:
		if s.issuing {
			return s, nil
		}
		key := msg.String()
		if key == "tab" && s.canIssue() {
			s.naming = !s.naming
			return s, nil
		}
		if s.naming {
			if key == "enter" {
				return s, s.issue()
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			s.errMsg = ""
			return s, cmd
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	if s.naming {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultScreen) issue() tea.Cmd {
	name := strings.TrimSpace(s.input.Value())
	if name == "" {
		s.errMsg = "Please enter your name for the certificate."
		s.input.Submit(false)
		return nil
	}
	s.input.Submit(true)
	s.issuing = true
	s.errMsg = ""

	req := certificate.Request{
		Name:      name,
		Title:     s.state.Title,
		Score:     s.outcome.Score,
		VideoID:   s.state.VideoID,
		SessionID: s.state.SessionID,
	}
	issuer := s.issuer
	return func() tea.Msg {
		cert, err := issuer.Issue(context.Background(), req)
		return issuedMsg{Cert: cert, Err: err}
	}
}

func describeIssueError(err error) string {
	if errors.Is(err, certificate.ErrEmptyName) {
		return "Please enter your name for the certificate."
	}
	return "Could not create the certificate: " + err.Error()
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.state.Title))
	b.WriteString("\n\n")

	score := fmt.Sprintf("Your score: %.1f%%", s.outcome.Score)
	detail := fmt.Sprintf("%d of %d correct", s.outcome.Correct, s.outcome.Total)

	b.WriteString(center(width, theme.Verdict(s.outcome.Passed).Render(score)))
	b.WriteString(center(width, theme.Subtitle.Render(detail)))
	b.WriteString("\n")
	if s.outcome.Passed {
		b.WriteString(center(width, theme.Body.Render("Congratulations! You passed the quiz.")))
	} else {
		b.WriteString(center(width, theme.Body.Render(fmt.Sprintf(
			"Try again! You need %.0f%% or higher to get the certificate.", s.threshold))))
	}
	b.WriteString("\n")

	b.WriteString(s.renderCertificatePanel(width))
	b.WriteString(s.renderReview(width))
	b.WriteString("\n")

	if !s.naming {
		b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(max(width/2-14, 0)).Render(s.menu.View()))
	}

	return b.String()
}

func (s *ResultScreen) renderCertificatePanel(width int) string {
	switch {
	case s.cert != nil:
		body := fmt.Sprintf("Certificate %s issued to %s\nSaved to %s", s.cert.ID, s.cert.Name, s.cert.Path)
		return center(width, theme.CertificateCard.Render(body)) + "\n"
	case !s.outcome.Passed:
		return ""
	case s.issuer == nil:
		return center(width, theme.Hint.Render("Certificates are not available in this session.")) + "\n"
	}

	var b strings.Builder
	b.WriteString(center(width, theme.Body.Render("Enter your name to get your certificate:")))
	if s.naming {
		b.WriteString(center(width, s.input.View()))
	} else {
		b.WriteString(center(width, theme.Hint.Render("Press Tab to enter your name.")))
	}
	if s.issuing {
		b.WriteString(center(width, theme.Hint.Render("Creating certificate...")))
	}
	if s.errMsg != "" {
		b.WriteString(center(width, theme.ErrorText.Render(s.errMsg)))
	}
	b.WriteString("\n")
	return b.String()
}

// renderReview lists each question with the learner's and the correct answer.
func (s *ResultScreen) renderReview(width int) string {
	var b strings.Builder
	for i, q := range s.state.Questions {
		got, answered := s.state.AnswerFor(i)
		var line string
		switch {
		case got == q.Correct:
			line = theme.Correct.Render("✓") + fmt.Sprintf(" Q%d  %s", i+1, got)
		case !answered:
			line = theme.Incorrect.Render("✗") + fmt.Sprintf(" Q%d  unanswered, correct %s", i+1, q.Correct)
		default:
			line = theme.Incorrect.Render("✗") + fmt.Sprintf(" Q%d  %s, correct %s", i+1, got, q.Correct)
		}
		b.WriteString(center(width, line))
	}
	return b.String()
}

func center(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s) + "\n"
}
