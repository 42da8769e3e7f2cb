package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	boxBorderActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	boxValueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorErrEdge).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorErrHead).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(colorErrBody)
)

// boxWidth picks ~80% of the terminal, between 40 and 110 columns. Mail rows need the room.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 80 / 100
	if w < 40 {
		w = 40
	}
	if w > 110 {
		w = 110
	}
	return w
}

func safeBoxWidth(width int) int {
	w := boxWidth(width)
	if width > 0 && w > width {
		return width
	}
	return w
}

// FullWidth returns the usable width when a panel takes the whole terminal.
func FullWidth(width int) int {
	if width <= 2 {
		return width
	}
	return width - 2
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	// Border adds 2, padding adds 4.
	inner := safeBoxWidth(width) - 6
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth flattens text to one line and truncates it to width.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(message)
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	return titledBox(title, content, boxBorder.Width(safeBoxWidth(width)))
}

// FullTitledBox is TitledBox stretched to the whole terminal width.
func FullTitledBox(title, content string, width int) string {
	return titledBox(title, content, boxBorderActive.Width(FullWidth(width)))
}

func titledBox(title, content string, style lipgloss.Style) string {
	boxed := style.Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" [ %s ] ", title)
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateRunes(titleText, middleLen)
	}

	left := max(0, (middleLen-lipgloss.Width(titleText))/2)
	right := max(0, middleLen-lipgloss.Width(titleText)-left)

	borderStyle := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	lines[0] = borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label string
	Value string
}

// Fields renders aligned label/value rows without a frame. Empty values are skipped.
func Fields(rows []TableRow, width int) string {
	labelWidth := 0
	kept := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Value) == "" {
			continue
		}
		r.Label = SanitizeOneLine(r.Label)
		kept = append(kept, r)
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	valueWidth := width - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 0
	}

	lines := make([]string, 0, len(kept))
	for _, r := range kept {
		label := boxLabelStyle.Render(padRight(r.Label, labelWidth))
		lines = append(lines, label+"  "+boxValueStyle.Render(ClampTextWidth(r.Value, valueWidth)))
	}
	return strings.Join(lines, "\n")
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
