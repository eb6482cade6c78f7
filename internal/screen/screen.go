// Package screen defines what the router needs from each full-window view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tubequiz/internal/ui/layout"
)

// Screen is one page of the app: home, quiz or result.
type Screen interface {
	Init() tea.Cmd

	// Update may return a different Screen; the router stores whatever
	// comes back.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies a short right-aligned header status, such as
// quiz progress.
type StatusProvider interface {
	Status() string
}
