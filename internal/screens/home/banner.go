package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tubequiz/internal/ui/theme"
)

const bannerArt = `
▀█▀ █ █ █▄▄ █▀▀   █▀█ █ █ █ ▀█
 █  █▄█ █▄█ ██▄   ▀▀█ █▄█ █ █▄`

const bannerCompact = "T U B E Q U I Z"

// renderBanner returns the app banner, falling back to plain letters
// on narrow terminals.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
