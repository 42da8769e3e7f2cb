package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a single column for TableGrid. Width is the visual width of the
// cell content; the last column absorbs whatever is left of the table width.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// BookmarkMark flags saved mails inside grid cells.
const BookmarkMark = "★"

const tableGridLeftOffset = 2

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorRowBg).
				Bold(true)

	gridActiveSepStyle = lipgloss.NewStyle().
				Foreground(colorBorder).
				Background(colorRowBg)

	gridMarkStyle = lipgloss.NewStyle().
			Foreground(colorStar).
			Bold(true)
)

// TableGrid renders rows under a header with the rounded border glyphs used by the
// boxes. activeRow highlights one data row; pass -1 to disable it.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int, activeRow int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", tableWidth)
	}

	border := lipgloss.RoundedBorder()
	cols := fitGridColumns(columns, border.Left, tableWidth)

	out := make([]string, 0, len(rows)+2)
	out = append(out, renderGridRow(cols, headerCells(cols), border.Left, tableWidth, true, false))
	out = append(out, renderGridRule(cols, border.Middle, border.Top, tableWidth))
	for i, row := range rows {
		out = append(out, renderGridRow(cols, row, border.Left, tableWidth, false, i == activeRow))
	}
	return strings.Join(out, "\n")
}

func headerCells(columns []TableColumn) []string {
	hdr := make([]string, len(columns))
	for i, c := range columns {
		hdr[i] = SanitizeOneLine(c.Header)
	}
	return hdr
}

func fitGridColumns(columns []TableColumn, sep string, tableWidth int) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	copy(fitted, columns)

	sepW := max(1, lipgloss.Width(sep))
	contentWidth := max(len(fitted), tableWidth-tableGridLeftOffset)

	// n columns => n-1 separators, no outer border.
	used := (len(fitted) - 1) * sepW
	for i := range fitted {
		fitted[i].Width = max(1, fitted[i].Width)
		used += fitted[i].Width
	}
	last := &fitted[len(fitted)-1]
	last.Width = max(1, last.Width+contentWidth-used)
	return fitted
}

func renderGridRow(columns []TableColumn, cells []string, sep string, tableWidth int, header, active bool) string {
	sepStyle := gridLineStyle
	if active {
		sepStyle = gridActiveSepStyle
	}
	sepStyled := sepStyle.Inline(true).Render(sep)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tableGridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sepStyled)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		rendered := renderGridCell(text, col.Width, col.Align)
		switch {
		case header:
			rendered = boxLabelStyle.Inline(true).Render(rendered)
		case active:
			rendered = gridActiveRowStyle.Inline(true).Render(rendered)
		}
		if !header {
			rendered = strings.ReplaceAll(rendered, BookmarkMark, gridMarkStyle.Render(BookmarkMark))
		}
		b.WriteString(rendered)
	}
	return padRight(b.String(), tableWidth)
}

func renderGridRule(columns []TableColumn, cross, horiz string, tableWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tableGridLeftOffset))
	for i, col := range columns {
		b.WriteString(strings.Repeat(horiz, max(1, col.Width)))
		if i < len(columns)-1 {
			b.WriteString(cross)
		}
	}
	return gridLineStyle.Inline(true).Render(padRight(b.String(), tableWidth))
}

func renderGridCell(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return truncateRunes(clamped, width)
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}
