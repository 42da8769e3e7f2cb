package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/bookmarks"
	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

type bookmarksMode int

const (
	bookmarksModeList bookmarksMode = iota
	bookmarksModeFilter
	bookmarksModeConfirm
)

// BookmarksModel lists saved mails with fuzzy filtering and removal.
type BookmarksModel struct {
	book    *bookmarks.Book
	list    *components.List
	items   []api.Email
	mode    bookmarksMode
	filter  string
	pattern string
	width   int
	height  int
	closed  bool
	vim     bool
}

// NewBookmarksModel opens the panel over book, which must not be nil.
func NewBookmarksModel(book *bookmarks.Book, vim bool) BookmarksModel {
	m := BookmarksModel{
		book: book,
		list: components.NewList(defaultResultRows),
		vim:  vim,
	}
	m.refresh()
	return m
}

func (m *BookmarksModel) setSize(width, height int) {
	m.width = width
	m.height = height
	if m.list == nil {
		return
	}
	// Each entry renders three lines plus a gap.
	m.list.PageSize = max(2, (height-16)/4)
}

// Closed reports whether the user asked to leave the panel.
func (m BookmarksModel) Closed() bool {
	return m.closed
}

// refresh reloads entries from the book, applying the active filter.
func (m *BookmarksModel) refresh() {
	if m.pattern == "" {
		m.items = m.book.List()
	} else {
		matches := m.book.Find(m.pattern)
		m.items = make([]api.Email, len(matches))
		for i, match := range matches {
			m.items[i] = match.Email
		}
	}
	ids := make([]string, len(m.items))
	for i, mail := range m.items {
		ids[i] = mail.ID
	}
	m.list.ReplaceItems(ids)
}

func (m BookmarksModel) selected() (api.Email, bool) {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.items) {
		return api.Email{}, false
	}
	return m.items[idx], true
}

func (m BookmarksModel) Update(msg tea.Msg) (BookmarksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarkChangedMsg:
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case bookmarksModeFilter:
			return m.handleFilterKeys(msg)
		case bookmarksModeConfirm:
			return m.handleConfirmKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m BookmarksModel) handleListKeys(msg tea.KeyMsg) (BookmarksModel, tea.Cmd) {
	switch {
	case isUp(msg, m.vim):
		m.list.Up()
	case isDown(msg, m.vim):
		m.list.Down()
	case isEnter(msg):
		mail, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return openMailMsg{mail: mail} }
	case isKey(msg, "/"):
		m.mode = bookmarksModeFilter
		m.filter = m.pattern
	case isKey(msg, "d", "x", "delete"):
		if _, ok := m.selected(); ok {
			m.mode = bookmarksModeConfirm
		}
	case isBack(msg):
		if m.pattern != "" {
			m.pattern = ""
			m.list.SetItems(nil)
			m.refresh()
			return m, nil
		}
		m.closed = true
	case isBookmarksPanel(msg), isKey(msg, "q"):
		m.closed = true
	}
	return m, nil
}

func (m BookmarksModel) handleFilterKeys(msg tea.KeyMsg) (BookmarksModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		m.pattern = strings.TrimSpace(m.filter)
		m.mode = bookmarksModeList
		m.list.SetItems(nil)
		m.refresh()
	case isBack(msg):
		m.mode = bookmarksModeList
	case isKey(msg, "backspace"):
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	case msg.Type == tea.KeySpace:
		m.filter += " "
	case msg.Type == tea.KeyRunes:
		m.filter += string(msg.Runes)
	}
	return m, nil
}

func (m BookmarksModel) handleConfirmKeys(msg tea.KeyMsg) (BookmarksModel, tea.Cmd) {
	switch {
	case isKey(msg, "y", "Y"):
		m.mode = bookmarksModeList
		mail, ok := m.selected()
		if !ok {
			return m, nil
		}
		err := m.book.Remove(context.Background(), mail.ID)
		m.refresh()
		return m, func() tea.Msg { return bookmarkChangedMsg{mail: mail, saved: false, err: err} }
	case isKey(msg, "n", "N"), isBack(msg):
		m.mode = bookmarksModeList
	}
	return m, nil
}

func (m BookmarksModel) View() string {
	switch m.mode {
	case bookmarksModeFilter:
		return components.Indent(components.InputDialog("Filter Bookmarks", m.filter), 1)
	case bookmarksModeConfirm:
		mail, _ := m.selected()
		msg := fmt.Sprintf("Remove %q from bookmarks?", components.SanitizeOneLine(subjectOrPlaceholder(mail.Subject)))
		return components.Indent(components.ConfirmDialog("Remove Bookmark", msg), 1)
	}

	title := fmt.Sprintf("Bookmarks (%d)", m.book.Count())
	return components.Indent(components.TitledBox(title, m.renderEntries(), m.width), 1)
}

func (m BookmarksModel) renderEntries() string {
	var b strings.Builder
	if m.pattern != "" {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("filter: %s  (esc clears)", components.SanitizeOneLine(m.pattern))))
		b.WriteString("\n\n")
	}
	if len(m.items) == 0 {
		if m.pattern != "" {
			b.WriteString(MutedStyle.Render("No saved emails match."))
		} else {
			b.WriteString(MutedStyle.Render("No saved emails yet."))
		}
		return b.String()
	}

	width := components.BoxContentWidth(m.width)
	if width <= 0 {
		width = fallbackGridWidth
	}
	now := time.Now()
	visible := m.list.Visible()
	for i := range visible {
		abs := m.list.RelToAbs(i)
		mail := m.items[abs]
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderEntry(mail, abs == m.list.Cursor, width, now))
	}
	return b.String()
}

func (m BookmarksModel) renderEntry(mail api.Email, active bool, width int, now time.Time) string {
	marker := "  "
	subjectStyle := NormalStyle
	if active {
		marker = SelectedStyle.Render("› ")
		subjectStyle = SelectedStyle
	}
	subject := components.ClampTextWidth(subjectOrPlaceholder(mail.Subject), width-4)
	meta := fmt.Sprintf("%s · %s", formatSender(mail.From), formatDate(mail.Date, now))
	lines := []string{
		marker + StarStyle.Render(components.BookmarkMark) + " " + subjectStyle.Render(subject),
		"    " + MutedStyle.Render(components.ClampTextWidth(meta, width-4)),
	}
	if p := preview(mail.Body, bookmarkPreviewLen); p != "" {
		lines = append(lines, "    "+NormalStyle.Render(components.ClampTextWidth(p, width-4)))
	}
	return strings.Join(lines, "\n")
}
