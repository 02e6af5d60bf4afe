package ui

import (
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Front     lipgloss.Color
	Back      lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

var neuroPalette = palette{
	Text:      lipgloss.Color("#ffffff"),
	Muted:     lipgloss.Color("#ddd6fe"),
	Accent:    lipgloss.Color("#22d3ee"),
	AccentAlt: lipgloss.Color("#f472b6"),
	Front:     lipgloss.Color("#6366f1"),
	Back:      lipgloss.Color("#db2777"),
	Border:    lipgloss.Color("#a855f7"),
	Success:   lipgloss.Color("#10b981"),
	Warning:   lipgloss.Color("#f9e2af"),
}

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	button    lipgloss.Style
	disabled  lipgloss.Style
	editor    lipgloss.Style
	cardFront lipgloss.Style
	cardBack  lipgloss.Style
	faceLabel lipgloss.Style
	cardText  lipgloss.Style
	status    lipgloss.Style
	errorText lipgloss.Style
}

func newStyles(p palette) styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Foreground(p.Text).
		Padding(0, 1)

	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		subtitle:  lipgloss.NewStyle().Foreground(p.Muted),
		muted:     lipgloss.NewStyle().Foreground(p.Muted),
		accent:    lipgloss.NewStyle().Foreground(p.Accent),
		button:    lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Back).Padding(0, 2),
		disabled:  lipgloss.NewStyle().Foreground(p.Muted).Faint(true).Padding(0, 2),
		editor:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border),
		cardFront: card.BorderForeground(p.Front),
		cardBack:  card.BorderForeground(p.Back),
		faceLabel: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		cardText:  lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		status:    lipgloss.NewStyle().Foreground(p.Success),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
	}
}
