package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

// Choice is one lettered option of a multiple-choice question.
type Choice struct {
	Letter string
	Text   string
}

// MultiChoice is a multiple-choice selector component. The chosen option
// can be changed until the owner stops forwarding keys.
type MultiChoice struct {
	Question string
	Choices  []Choice
	Selected int
	Chosen   int
}

// NewMultiChoice creates a new multiple-choice component. chosen is the
// index of a previously picked option, or -1.
func NewMultiChoice(question string, choices []Choice, chosen int) MultiChoice {
	selected := 0
	if chosen >= 0 && chosen < len(choices) {
		selected = chosen
	} else {
		chosen = -1
	}
	return MultiChoice{
		Question: question,
		Choices:  choices,
		Selected: selected,
		Chosen:   chosen,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Enter picks the
// highlighted option; a letter key picks its option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected < len(m.Choices) {
			m.Chosen = m.Selected
		}
	default:
		if i := m.indexOf(key); i >= 0 {
			m.Selected = i
			m.Chosen = i
		}
	}

	return m, nil
}

func (m MultiChoice) indexOf(key string) int {
	key = strings.TrimPrefix(key, "shift+")
	for i, c := range m.Choices {
		if strings.EqualFold(c.Letter, key) {
			return i
		}
	}
	return -1
}

// ChosenLetter returns the letter of the picked option, if any.
func (m MultiChoice) ChosenLetter() (string, bool) {
	if m.Chosen < 0 || m.Chosen >= len(m.Choices) {
		return "", false
	}
	return m.Choices[m.Chosen].Letter, true
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, c.Letter, c.Text)

		style := theme.Unselected
		switch {
		case i == m.Chosen:
			style = theme.Chosen
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
