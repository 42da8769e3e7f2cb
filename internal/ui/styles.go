package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorBorder     = lipgloss.Color("#273540") // border
	ColorStar       = lipgloss.Color("#e5c07b") // bookmark
)

// --- Reusable Styles ---

var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	StarStyle = lipgloss.NewStyle().
			Foreground(ColorStar).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	// ChipStyle renders a confirmed search term.
	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorSecondary).
			Padding(0, 1).
			MarginRight(1)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)

	SubjectStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)
)
