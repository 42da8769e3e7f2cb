package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := Hint("pgdn", "Next page")
	assert.Contains(t, out, "Next page")
	assert.Contains(t, out, "pgdn")
}

func TestStatusBarRendersHints(t *testing.T) {
	out := StatusBar([]string{Hint("ctrl+c", "Quit")}, 0)
	assert.Contains(t, out, "Quit")
	assert.Contains(t, out, "ctrl+c")
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}

func TestWrapSegmentsEmpty(t *testing.T) {
	assert.Nil(t, wrapSegments(nil, 10))
}
