package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/bookmarks"
	"github.com/gravitrone/mailsearch/cli/internal/session"
	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

type appView int

const (
	viewSearch appView = iota
	viewDetail
	viewBookmarks
)

const toastDuration = 2500 * time.Millisecond

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// Options configures the TUI.
type Options struct {
	Session session.Options
	// Timeout bounds each search request.
	Timeout time.Duration
	VimKeys bool
}

// App is the root bubbletea model. The search screen is always alive underneath; the
// detail and bookmarks panels overlay it.
type App struct {
	marks  *bookmarks.Book
	opts   Options
	view   appView
	back   appView
	width  int
	height int
	toast  *appToast

	search SearchModel
	detail DetailModel
	panel  BookmarksModel
}

// NewApp wires the screens. marks may be nil, which disables bookmarking.
func NewApp(client Searcher, marks *bookmarks.Book, opts Options) App {
	return App{
		marks:  marks,
		opts:   opts,
		search: NewSearchModel(client, marks, opts.Session, opts.Timeout),
	}
}

// SessionID identifies the search session in logs.
func (a App) SessionID() string {
	return a.search.Session().ID()
}

func (a App) Init() tea.Cmd {
	return a.search.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.setSize(msg.Width, msg.Height)
		a.detail.setSize(msg.Width, msg.Height)
		a.panel.setSize(msg.Width, msg.Height)
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case openMailMsg:
		a.back = a.view
		a.detail = NewDetailModel(msg.mail, a.marks, a.opts.VimKeys)
		a.detail.setSize(a.width, a.height)
		a.view = viewDetail
		return a, nil

	case bookmarkChangedMsg:
		if a.view == viewBookmarks {
			a.panel, _ = a.panel.Update(msg)
		}
		cmd := a.toastForBookmark(msg)
		return a, cmd

	case tea.KeyMsg:
		if isQuit(msg) {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	// Timers, responses and spinner ticks belong to the search screen whatever is on top.
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
		if a.detail.Closed() {
			a.view = a.back
		}
	case viewBookmarks:
		a.panel, cmd = a.panel.Update(msg)
		if a.panel.Closed() {
			a.view = viewSearch
		}
	default:
		if isBookmarksPanel(msg) {
			cmd = a.openBookmarks()
			return a, cmd
		}
		a.search, cmd = a.search.Update(msg)
	}
	return a, cmd
}

func (a *App) openBookmarks() tea.Cmd {
	if a.marks == nil {
		return a.setToast("warning", "Bookmarks are unavailable.")
	}
	a.panel = NewBookmarksModel(a.marks, a.opts.VimKeys)
	a.panel.setSize(a.width, a.height)
	a.view = viewBookmarks
	return nil
}

func (a *App) toastForBookmark(msg bookmarkChangedMsg) tea.Cmd {
	if msg.err != nil {
		return a.setToast("error", fmt.Sprintf("bookmark: %v", msg.err))
	}
	if msg.saved {
		return a.setToast("success", "Saved to bookmarks.")
	}
	return a.setToast("info", "Removed from bookmarks.")
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) View() string {
	hints := components.StatusBar(a.statusHints(), a.width)
	if a.view == viewDetail && a.detail.Fullscreen() {
		return a.detail.View() + "\n" + hints
	}

	banner := centerBlockUniform(RenderBanner(), a.width)

	var content string
	switch a.view {
	case viewDetail:
		content = a.detail.View()
	case viewBookmarks:
		content = a.panel.View()
	default:
		content = a.search.View()
	}
	content = centerBlockUniform(content, a.width)

	feedback := ""
	if err := a.search.Session().Err(); err != nil && a.view == viewSearch {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Search failed", describeError(err), a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, a.renderStatusLine(), content, hints, feedback)
}

func (a App) renderStatusLine() string {
	parts := []string{MutedStyle.Render("session " + shortID(a.search.Session().ID()))}
	if a.marks != nil {
		parts = append(parts, StarStyle.Render(components.BookmarkMark)+MutedStyle.Render(fmt.Sprintf(" %d saved", a.marks.Count())))
	}
	return centerBlock(strings.Join(parts, MutedStyle.Render("  ·  ")), a.width)
}

func (a App) statusHints() []string {
	switch a.view {
	case viewDetail:
		return []string{
			components.Hint("↑/↓", "scroll"),
			components.Hint("pgup/pgdn", "page"),
			components.Hint("f", "fullscreen"),
			components.Hint("ctrl+s", "bookmark"),
			components.Hint("esc", "back"),
		}
	case viewBookmarks:
		return []string{
			components.Hint("↑/↓", "select"),
			components.Hint("enter", "open"),
			components.Hint("/", "filter"),
			components.Hint("d", "remove"),
			components.Hint("esc", "back"),
		}
	}
	return []string{
		components.Hint("enter", "add term"),
		components.Hint("tab", "accept hint"),
		components.Hint("⌫", "drop term"),
		components.Hint("↑/↓", "select"),
		components.Hint("pgup/pgdn", "page"),
		components.Hint("ctrl+s", "bookmark"),
		components.Hint("ctrl+b", "bookmarks"),
		components.Hint("ctrl+c", "quit"),
	}
}

// describeError turns a search failure into a message for the error box.
func describeError(err error) string {
	var se *api.StatusError
	switch {
	case errors.Is(err, api.ErrRateLimited):
		return "The search backend is throttling requests. Slow down and try again."
	case errors.Is(err, api.ErrUnavailable):
		return "The search backend is unavailable. Requests resume once it recovers."
	case errors.Is(err, context.DeadlineExceeded):
		return "The search timed out."
	case errors.As(err, &se):
		return fmt.Sprintf("The search backend rejected the query: %v", se)
	}
	return err.Error()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func centerBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth >= width {
			continue
		}
		pad := (width - lineWidth) / 2
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	prefix := strings.Repeat(" ", (width-maxWidth)/2)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
