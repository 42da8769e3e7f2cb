package components

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(48)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	dialogFieldStyle = lipgloss.NewStyle().
				Foreground(colorLabel)
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	body := dialogBodyStyle.Render(SanitizeText(message))
	hint := dialogBodyStyle.Render("\ny: confirm | n: cancel")
	return dialogStyle.Render(dialogTitleStyle.Render(title) + "\n\n" + body + hint)
}

// InputDialog renders a one-line text prompt.
func InputDialog(title, input string) string {
	field := dialogFieldStyle.Render("> " + SanitizeOneLine(input) + "█")
	hint := dialogBodyStyle.Render("\nenter: apply | esc: cancel")
	return dialogStyle.Render(dialogTitleStyle.Render(title) + "\n\n" + field + hint)
}
