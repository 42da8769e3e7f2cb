package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

func TestRenderBannerIncludesSubtitleAndNoOSC(t *testing.T) {
	out := RenderBanner()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Enron Mail Archive")
	assert.Contains(t, clean, "┏┳┓")
	assert.Contains(t, clean, "──")
}
