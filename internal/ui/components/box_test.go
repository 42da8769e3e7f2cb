package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 0, boxWidth(0))
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 110, boxWidth(200))
	assert.Equal(t, 80, boxWidth(100))
}

func TestBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Results", "line", 20)
	for _, line := range strings.Split(out, "\n") {
		// Content width is capped at the terminal; the frame adds at most two columns.
		assert.LessOrEqual(t, lipgloss.Width(line), 22)
	}
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("Saved mail", "Content", 80)
	assert.Contains(t, out, "Saved mail")
	assert.Contains(t, out, "Content")
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.Contains(t, out, "Content")
}

func TestFullTitledBoxUsesTerminalWidth(t *testing.T) {
	out := FullTitledBox("Mail", "body", 120)
	first := strings.Split(out, "\n")[0]
	assert.InDelta(t, 119, lipgloss.Width(first), 1)
	assert.Contains(t, first, "Mail")
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "search backend unavailable", 80)
	assert.Contains(t, out, "search backend unavailable")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "a b", ClampTextWidth("a\n\nb", 10))
	assert.Equal(t, "abc", ClampTextWidth("abcdef", 3))
	assert.Equal(t, "raw\ntext", ClampTextWidth("raw\ntext", 0))
}

func TestFieldsSkipsEmptyAndAligns(t *testing.T) {
	out := Fields([]TableRow{
		{Label: "From", Value: "kenneth.lay@enron.com"},
		{Label: "CC", Value: ""},
		{Label: "Subject", Value: "Raptor"},
	}, 60)
	clean := SanitizeText(out)
	lines := strings.Split(clean, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "From     kenneth.lay"))
	assert.True(t, strings.HasPrefix(lines[1], "Subject  Raptor"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb", 2))
}
