package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/mailsearch/cli/internal/cmd"
	"github.com/gravitrone/mailsearch/cli/internal/session"
	"github.com/gravitrone/mailsearch/cli/internal/ui"
)

func main() {
	if err := cmd.RootCmd(runTUI).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(env *cmd.Env) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("interactive search needs a terminal; use 'mailsearch search' instead")
	}

	book, err := env.Bookmarks(context.Background())
	if err != nil {
		// Another instance may hold the store lock; search still works without it.
		env.Logger.Warn("bookmarks unavailable", "error", err)
		book = nil
	}

	cfg := env.Config
	app := ui.NewApp(env.Client(), book, ui.Options{
		Session: session.Options{
			PageSize: cfg.PageSize,
			Debounce: cfg.Debounce,
			Sort:     cfg.Sort,
			Logger:   env.Logger,
		},
		Timeout: cfg.Timeout,
		VimKeys: cfg.VimKeys,
	})

	env.Logger.Info("tui starting", "base_url", cfg.BaseURL, "session", app.SessionID())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
