package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/bookmarks"
	"github.com/gravitrone/mailsearch/cli/internal/logging"
	"github.com/gravitrone/mailsearch/cli/internal/session"
	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

// Searcher runs a composed query against the backend.
type Searcher interface {
	Search(ctx context.Context, p api.SearchParams) (*api.SearchResponse, error)
}

const (
	defaultRequestTimeout = 30 * time.Second
	defaultResultRows     = 10
	fallbackGridWidth     = 74
)

// debounceMsg is delivered when a keystroke's quiet period elapses.
type debounceMsg struct{ ticket session.Ticket }

// searchResultMsg carries a response back with the version that asked for it.
type searchResultMsg struct {
	version uint64
	resp    *api.SearchResponse
	err     error
	scroll  bool
}

// openMailMsg asks the app to show a mail in the detail panel.
type openMailMsg struct{ mail api.Email }

// bookmarkChangedMsg reports a bookmark toggle so every panel can refresh.
type bookmarkChangedMsg struct {
	mail  api.Email
	saved bool
	err   error
}

// SearchModel is the type-ahead search screen. It owns the session and drives it from
// bubbletea messages; timers and requests run as commands and report back by version.
type SearchModel struct {
	client  Searcher
	sess    *session.Session
	marks   *bookmarks.Book
	input   textinput.Model
	spinner spinner.Model
	list    *components.List
	timeout time.Duration
	width   int
	height  int
	logger  *slog.Logger
}

// NewSearchModel builds the search screen. marks may be nil when bookmarks are unavailable.
func NewSearchModel(client Searcher, marks *bookmarks.Book, opts session.Options, timeout time.Duration) SearchModel {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "search mail…"
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = AccentStyle

	return SearchModel{
		client:  client,
		sess:    session.New(opts),
		marks:   marks,
		input:   input,
		spinner: spin,
		list:    components.NewList(defaultResultRows),
		timeout: timeout,
		logger:  logging.For("ui.search"),
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Session exposes the underlying session for status rendering.
func (m SearchModel) Session() *session.Session {
	return m.sess
}

func (m *SearchModel) setSize(width, height int) {
	m.width = width
	m.height = height
	// Banner, input, hints and status bar take roughly 20 rows.
	m.list.PageSize = max(3, height-20)
	m.input.Width = max(10, components.BoxContentWidth(width)-4)
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		return m, m.run(m.sess.Fire(msg.ticket))

	case searchResultMsg:
		if msg.err != nil {
			m.sess.Fail(msg.version, msg.err)
			return m, nil
		}
		if m.sess.Apply(msg.version, msg.resp) == session.StateSettled {
			m.refreshRows(msg.scroll)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sess.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	draft := m.input.Value()
	switch {
	case isEnter(msg):
		if strings.TrimSpace(draft) == "" && m.list.Selected() >= 0 {
			return m, m.openSelected()
		}
		m.input.SetValue("")
		return m, m.run(m.sess.ConfirmDraft())

	case isAccept(msg):
		if draft == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.run(m.sess.AcceptSuggestion())

	case isKey(msg, ","):
		if strings.TrimSpace(draft) == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.run(m.sess.ConfirmDraft())

	case isKey(msg, "backspace") && draft == "":
		last, ok := m.sess.LastTerm()
		if !ok {
			return m, nil
		}
		return m, m.run(m.sess.Remove(last))

	case isNextPage(msg):
		d, ok := m.sess.Next()
		if !ok {
			return m, nil
		}
		return m, m.run(d)

	case isPrevPage(msg):
		d, ok := m.sess.Prev()
		if !ok {
			return m, nil
		}
		return m, m.run(d)

	case isUp(msg, false):
		m.list.Up()
		return m, nil

	case isDown(msg, false):
		m.list.Down()
		return m, nil

	case isToggleBookmark(msg):
		hit, ok := m.selectedHit()
		if !ok || m.marks == nil {
			return m, nil
		}
		return m, toggleBookmark(m.marks, hit.Email())

	case isBack(msg):
		if draft == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.arm("")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == draft {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.arm(m.input.Value()))
}

// arm records the new draft and schedules its debounce ticket.
func (m *SearchModel) arm(draft string) tea.Cmd {
	t := m.sess.SetDraft(strings.TrimSpace(draft))
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return debounceMsg{ticket: t}
	})
}

// run turns a session dispatch into work: a request for pending intents, a redraw for
// the empty-query short circuit.
func (m *SearchModel) run(d session.Dispatch) tea.Cmd {
	switch d.State {
	case session.StatePending:
		return tea.Batch(m.spinner.Tick, m.searchCmd(d.Request))
	case session.StateSettled:
		m.refreshRows(true)
	}
	return nil
}

func (m SearchModel) searchCmd(req session.Request) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Search(ctx, req.Params())
		return searchResultMsg{version: req.Version, resp: resp, err: err, scroll: req.ScrollToTop}
	}
}

func (m *SearchModel) refreshRows(scroll bool) {
	hits := m.sess.View().Hits
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	if scroll {
		m.list.SetItems(ids)
		return
	}
	m.list.ReplaceItems(ids)
}

func (m SearchModel) selectedHit() (api.Hit, bool) {
	hits := m.sess.View().Hits
	idx := m.list.Selected()
	if idx < 0 || idx >= len(hits) {
		return api.Hit{}, false
	}
	return hits[idx], true
}

func (m SearchModel) openSelected() tea.Cmd {
	hit, ok := m.selectedHit()
	if !ok {
		return nil
	}
	mail := hit.Email()
	m.logger.Debug("open mail", "id", mail.ID)
	return func() tea.Msg { return openMailMsg{mail: mail} }
}

func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	if hint, ok := m.sess.Suggestion(); ok {
		b.WriteString(MutedStyle.Render("  tab ⇥ ") + SuggestionStyle.Render(components.SanitizeOneLine(hint)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderResults())
	return components.Indent(components.TitledBox("Search", b.String(), m.width), 1)
}

func (m SearchModel) renderInput() string {
	terms := m.sess.Terms()
	chips := make([]string, 0, len(terms)+1)
	for _, t := range terms {
		chips = append(chips, ChipStyle.Render(components.SanitizeOneLine(t)+" ×"))
	}
	chips = append(chips, m.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m SearchModel) renderResults() string {
	view := m.sess.View()
	loading := m.sess.Loading()

	switch {
	case loading && len(view.Hits) == 0:
		return m.spinner.View() + MutedStyle.Render(" Searching...")
	case m.sess.Query() == "":
		return MutedStyle.Render("Type to search. enter confirms a term, tab takes the suggestion.")
	case view.Total == 0:
		return MutedStyle.Render("No matches.")
	}

	var b strings.Builder
	count := HeaderStyle.Render(fmt.Sprintf("%d results", view.Total))
	if loading {
		count += " " + m.spinner.View()
	}
	b.WriteString(count)
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid(view.Hits))
	if pager := m.renderPager(); pager != "" {
		b.WriteString("\n\n")
		b.WriteString(pager)
	}
	return b.String()
}

func (m SearchModel) renderGrid(hits []api.Hit) string {
	width := components.BoxContentWidth(m.width)
	if width <= 0 {
		width = fallbackGridWidth
	}
	cols := []components.TableColumn{
		{Header: "", Width: 4},
		{Header: "From", Width: 18},
		{Header: "Subject", Width: 20},
		{Header: "Date", Width: 10, Align: lipgloss.Right},
	}
	// Date stays last so its right alignment holds; subject takes the slack.
	cols[2].Width = max(cols[2].Width, width-2-cols[0].Width-cols[1].Width-cols[3].Width-3)

	now := time.Now()
	visible := m.list.Visible()
	rows := make([][]string, 0, len(visible))
	active := -1
	for i := range visible {
		abs := m.list.RelToAbs(i)
		if abs >= len(hits) {
			break
		}
		mail := hits[abs].Email()
		rows = append(rows, m.gridRow(mail, now))
		if abs == m.list.Cursor {
			active = i
		}
	}
	return components.TableGrid(cols, rows, width, active)
}

func (m SearchModel) gridRow(mail api.Email, now time.Time) []string {
	avatar := formatInitials(mail.From)
	if m.marks != nil && m.marks.Contains(mail.ID) {
		avatar += " " + components.BookmarkMark
	}
	subject := subjectOrPlaceholder(mail.Subject)
	if p := preview(mail.Body, rowPreviewLen); p != "" {
		subject += " · " + p
	}
	return []string{avatar, formatSender(mail.From), subject, formatDate(mail.Date, now)}
}

func (m SearchModel) renderPager() string {
	page := m.sess.Pagination()
	bounds := page.Bounds()
	if !bounds.Visible {
		return ""
	}
	prev := MutedStyle.Render("‹ pgup")
	if bounds.HasPrev {
		prev = SelectedStyle.Render("‹ pgup")
	}
	next := MutedStyle.Render("pgdn ›")
	if bounds.HasNext {
		next = SelectedStyle.Render("pgdn ›")
	}
	return prev + "   " + NormalStyle.Render(page.Label()) + "   " + next
}

// toggleBookmark flips the saved state of mail. The store write happens inline so the
// book is only ever touched from the update loop.
func toggleBookmark(book *bookmarks.Book, mail api.Email) tea.Cmd {
	saved, err := book.Toggle(context.Background(), mail)
	if err != nil {
		logging.For("ui.bookmarks").Warn("toggle bookmark failed", "id", mail.ID, "error", err)
	}
	return func() tea.Msg {
		return bookmarkChangedMsg{mail: mail, saved: saved, err: err}
	}
}
