package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
┏┳┓┏━┓╻╻  ┏━┓┏━╸┏━┓┏━┓┏━╸╻ ╻
┃┃┃┣━┫┃┃  ┗━┓┣╸ ┣━┫┣┳┛┃  ┣━┫
╹ ╹╹ ╹╹┗━╸┗━┛┗━╸╹ ╹╹┗╸┗━╸╹ ╹`

const bannerSubtitle = "Enron Mail Archive • Type-ahead Search"

// RenderBanner returns the styled banner with its subtitle and underline.
func RenderBanner() string {
	lines := strings.Split(strings.Trim(bannerArt, "\n"), "\n")
	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	blockWidth := lipgloss.Width(bannerSubtitle)
	var rendered strings.Builder
	for _, line := range lines {
		blockWidth = max(blockWidth, lipgloss.Width(line))
	}
	for _, line := range lines {
		rendered.WriteString(lipgloss.NewStyle().Width(blockWidth).Align(lipgloss.Center).Render(baseStyle.Render(line)))
		rendered.WriteString("\n")
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)
	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle)))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}
