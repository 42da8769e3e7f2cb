package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

func seededBook(t *testing.T, mails ...api.Email) *BookmarksModel {
	t.Helper()
	book := memoryBook(t)
	for _, mail := range mails {
		_, err := book.Add(context.Background(), mail)
		require.NoError(t, err)
	}
	m := NewBookmarksModel(book, true)
	m.setSize(100, 40)
	return &m
}

func sampleMails() []api.Email {
	return []api.Email{
		{ID: "m1", From: "kenneth.lay@enron.com", Subject: "Raptor structure", Body: "numbers attached"},
		{ID: "m2", From: "jeff.skilling@enron.com", Subject: "Board meeting"},
		{ID: "m3", From: "andrew.fastow@enron.com", Subject: "LJM update"},
	}
}

func TestBookmarksPanelEmptyState(t *testing.T) {
	m := seededBook(t)
	out := m.View()
	assert.Contains(t, out, "Bookmarks (0)")
	assert.Contains(t, out, "No saved emails yet.")
}

func TestBookmarksPanelListsSavedMails(t *testing.T) {
	m := seededBook(t, sampleMails()...)
	out := m.View()
	assert.Contains(t, out, "Bookmarks (3)")
	assert.Contains(t, out, "Raptor structure")
	assert.Contains(t, out, "Kenneth Lay")
	assert.Contains(t, out, "numbers attached")
	assert.Contains(t, out, "★")
}

func TestBookmarksPanelEnterOpensSelected(t *testing.T) {
	m := *seededBook(t, sampleMails()...)
	m, _ = m.Update(runeKey('j'))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(openMailMsg)
	require.True(t, ok)
	assert.Equal(t, "m2", msg.mail.ID)
}

func TestBookmarksPanelFilter(t *testing.T) {
	m := *seededBook(t, sampleMails()...)
	m, _ = m.Update(runeKey('/'))
	assert.Contains(t, m.View(), "Filter Bookmarks")

	for _, r := range "fastow" {
		m, _ = m.Update(runeKey(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.items, 1)
	assert.Equal(t, "m3", m.items[0].ID)
	out := m.View()
	assert.Contains(t, out, "filter: fastow")
	assert.NotContains(t, out, "Board meeting")

	// Esc clears the filter before closing.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.items, 3)
	assert.False(t, m.Closed())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Closed())
}

func TestBookmarksPanelFilterWithoutMatches(t *testing.T) {
	m := *seededBook(t, sampleMails()...)
	m, _ = m.Update(runeKey('/'))
	m, _ = m.Update(runeKey('z'))
	m, _ = m.Update(runeKey('q'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "No saved emails match.")
}

func TestBookmarksPanelRemoveNeedsConfirmation(t *testing.T) {
	m := *seededBook(t, sampleMails()...)

	m, _ = m.Update(runeKey('d'))
	assert.Contains(t, m.View(), "Remove Bookmark")
	m, _ = m.Update(runeKey('n'))
	assert.Equal(t, 3, m.book.Count())

	m, _ = m.Update(runeKey('d'))
	m, cmd := m.Update(runeKey('y'))
	require.NotNil(t, cmd)
	msg := cmd().(bookmarkChangedMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, "m1", msg.mail.ID)
	assert.False(t, msg.saved)
	assert.Equal(t, 2, m.book.Count())
	assert.Len(t, m.items, 2)
}

func TestBookmarksPanelRefreshesOnChange(t *testing.T) {
	m := *seededBook(t)
	_, err := m.book.Add(context.Background(), api.Email{ID: "m9", Subject: "late"})
	require.NoError(t, err)

	m, _ = m.Update(bookmarkChangedMsg{mail: api.Email{ID: "m9"}, saved: true})
	assert.Len(t, m.items, 1)
	assert.Contains(t, m.View(), "late")
}
