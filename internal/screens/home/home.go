// Package home is the landing screen: paste a YouTube URL and get a quiz.
package home

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/router"
	"github.com/abhisek/tubequiz/internal/screen"
	quizscreen "github.com/abhisek/tubequiz/internal/screens/quiz"
	"github.com/abhisek/tubequiz/internal/screens/result"
	sess "github.com/abhisek/tubequiz/internal/session"
	"github.com/abhisek/tubequiz/internal/transcript"
	"github.com/abhisek/tubequiz/internal/ui/components"
	"github.com/abhisek/tubequiz/internal/ui/layout"
	"github.com/abhisek/tubequiz/internal/ui/theme"
	"github.com/abhisek/tubequiz/internal/videoid"
)

// Generator builds a quiz for a video URL.
type Generator interface {
	Generate(ctx context.Context, st sess.State, url string) (sess.State, error)
}

// quizReadyMsg is sent when a generate action finishes.
type quizReadyMsg struct {
	State sess.State
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	generator Generator
	threshold float64
	issuer    result.Issuer

	input   components.TextInput
	spinner spinner.Model
	loading bool
	errMsg  string
	state   sess.State
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. initialURL pre-fills the input.
func New(generator Generator, threshold float64, issuer result.Issuer, initialURL string) *HomeScreen {
	input := components.NewTextInput("https://www.youtube.com/watch?v=...", 0)
	if initialURL != "" {
		input.SetValue(initialURL)
	}
	return &HomeScreen{
		generator: generator,
		threshold: threshold,
		issuer:    issuer,
		input:     input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Loading reports whether a generate action is in flight.
func (h *HomeScreen) Loading() bool {
	return h.loading
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		h.loading = false
		if msg.Err != nil {
			h.errMsg = describeError(msg.Err)
			return h, nil
		}
		h.state = msg.State
		h.errMsg = ""
		next := quizscreen.New(msg.State, h.threshold, h.issuer)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case spinner.TickMsg:
		if !h.loading {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		if h.loading {
			return h, nil
		}
		if msg.String() == "enter" {
			return h, h.submit()
		}
	}

	if h.loading {
		return h, nil
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// submit validates the URL locally and starts the generate action.
func (h *HomeScreen) submit() tea.Cmd {
	url := strings.TrimSpace(h.input.Value())
	if _, err := videoid.Extract(url); err != nil {
		h.input.Submit(false)
		h.errMsg = describeError(err)
		return nil
	}

	h.input.Submit(true)
	h.errMsg = ""
	h.loading = true

	gen, prev := h.generator, h.state
	return tea.Batch(
		h.spinner.Tick,
		func() tea.Msg {
			st, err := gen.Generate(context.Background(), prev, url)
			return quizReadyMsg{State: st, Err: err}
		},
	)
}

func describeError(err error) string {
	var unavailable *transcript.ErrUnavailable
	var tooFew *sess.ErrTooFewQuestions
	switch {
	case errors.Is(err, videoid.ErrNoVideoID):
		return "Invalid YouTube URL. Paste a watch, youtu.be, embed or shorts link."
	case errors.As(err, &unavailable):
		return "Error fetching transcript: " + unavailable.Err.Error()
	case errors.As(err, &tooFew):
		return "Could not build a quiz from this video: " + tooFew.Error()
	default:
		return "Error generating questions: " + err.Error()
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(renderBanner(width))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Turn any YouTube video into a quiz and earn a certificate."))
	b.WriteString("\n\n\n")
	b.WriteString(theme.Body.Render("YouTube URL"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(min(width-8, 80)).Render(h.input.View()))
	b.WriteString("\n\n")

	switch {
	case h.loading:
		b.WriteString(h.spinner.View() + " " + theme.Hint.Render("Fetching transcript and generating questions..."))
	case h.errMsg != "":
		b.WriteString(theme.ErrorText.Render(h.errMsg))
	case h.state.HasQuiz():
		b.WriteString(theme.Hint.Render("Last quiz: " + h.state.Title))
	}

	return layout.Center(b.String(), width, height)
}
