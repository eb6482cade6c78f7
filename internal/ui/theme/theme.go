// Package theme holds the colors and lipgloss styles shared by every screen.
package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette: video-player red on dark slate, gold for certificates.
var (
	Primary   = lipgloss.Color("#EF4444")
	Secondary = lipgloss.Color("#38BDF8")
	Accent    = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#F59E0B")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle  = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body      = lipgloss.NewStyle().Foreground(Text)
	Hint      = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// CertificateCard frames the issued-certificate notice.
	CertificateCard = Card.BorderForeground(Accent).Foreground(Accent)
)

// Answer option states. Selected is the cursor row, Chosen the recorded
// answer.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Chosen     = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	badge = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(BgCard)
)

// DifficultyBadge renders a question's difficulty label as a small tag.
// Hard questions stand out in amber.
func DifficultyBadge(label string) string {
	bg := Secondary
	if strings.EqualFold(label, "hard") {
		bg = Warning
	}
	return badge.Background(bg).Render(strings.ToUpper(label))
}

// Verdict is the style for a final score.
func Verdict(passed bool) lipgloss.Style {
	if passed {
		return Correct
	}
	return Incorrect
}
