package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/bookmarks"
	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

const (
	detailDefaultRows = 15
	detailMinRows     = 5
	// Rows used by the banner, headers, subject and hints around the body.
	detailChromeRows     = 22
	detailFullChromeRows = 12
)

// DetailModel shows one mail. The body scrolls; f toggles fullscreen.
type DetailModel struct {
	mail       api.Email
	marks      *bookmarks.Book
	fullscreen bool
	offset     int
	width      int
	height     int
	closed     bool
	vim        bool
}

// NewDetailModel opens mail. marks may be nil; vim enables j/k/g/G.
func NewDetailModel(mail api.Email, marks *bookmarks.Book, vim bool) DetailModel {
	return DetailModel{mail: mail, marks: marks, vim: vim}
}

func (m *DetailModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
}

// Mail returns the mail being shown.
func (m DetailModel) Mail() api.Email {
	return m.mail
}

// Closed reports whether the user asked to leave the panel.
func (m DetailModel) Closed() bool {
	return m.closed
}

// Fullscreen reports whether the panel takes the whole terminal.
func (m DetailModel) Fullscreen() bool {
	return m.fullscreen
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isBack(key), isKey(key, "q"):
		m.closed = true
	case isFullscreen(key):
		m.fullscreen = !m.fullscreen
		m.clamp()
	case isUp(key, m.vim):
		m.offset--
		m.clamp()
	case isDown(key, m.vim):
		m.offset++
		m.clamp()
	case isPrevPage(key):
		m.offset -= m.bodyRows()
		m.clamp()
	case isNextPage(key):
		m.offset += m.bodyRows()
		m.clamp()
	case isKey(key, "home"), m.vim && isKey(key, "g"):
		m.offset = 0
	case isKey(key, "end"), m.vim && isKey(key, "G"):
		m.offset = m.maxOffset()
	case isToggleBookmark(key):
		if m.marks == nil || m.mail.ID == "" {
			return m, nil
		}
		return m, toggleBookmark(m.marks, m.mail)
	}
	return m, nil
}

func (m DetailModel) contentWidth() int {
	if m.fullscreen {
		// Border plus horizontal padding.
		return max(10, components.FullWidth(m.width)-6)
	}
	w := components.BoxContentWidth(m.width)
	if w <= 0 {
		return fallbackGridWidth
	}
	return w
}

func (m DetailModel) bodyRows() int {
	if m.height <= 0 {
		return detailDefaultRows
	}
	chrome := detailChromeRows
	if m.fullscreen {
		chrome = detailFullChromeRows
	}
	return max(detailMinRows, m.height-chrome)
}

func (m DetailModel) bodyLines() []string {
	body := strings.TrimSpace(components.SanitizeText(m.mail.Body))
	if body == "" {
		return []string{MutedStyle.Render("(empty body)")}
	}
	wrapped := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	return strings.Split(wrapped, "\n")
}

func (m DetailModel) maxOffset() int {
	return max(0, len(m.bodyLines())-m.bodyRows())
}

func (m *DetailModel) clamp() {
	m.offset = min(max(m.offset, 0), m.maxOffset())
}

func (m DetailModel) View() string {
	width := m.contentWidth()

	var b strings.Builder
	subject := SubjectStyle.Render(components.ClampTextWidth(subjectOrPlaceholder(m.mail.Subject), width))
	if m.marks != nil && m.marks.Contains(m.mail.ID) {
		subject = StarStyle.Render(components.BookmarkMark) + " " + subject
	}
	b.WriteString(subject)
	b.WriteString("\n\n")
	b.WriteString(components.Fields([]components.TableRow{
		{Label: "From", Value: m.mail.From},
		{Label: "To", Value: m.mail.To},
		{Label: "CC", Value: m.mail.CC},
		{Label: "Date", Value: m.mail.Date},
	}, width))
	b.WriteString("\n\n")

	lines := m.bodyLines()
	end := min(len(lines), m.offset+m.bodyRows())
	b.WriteString(strings.Join(lines[m.offset:end], "\n"))
	if len(lines) > m.bodyRows() {
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("lines %d-%d of %d", m.offset+1, end, len(lines))))
	}

	if m.fullscreen {
		return components.FullTitledBox("Mail", b.String(), m.width)
	}
	return components.Indent(components.TitledBox("Mail", b.String(), m.width), 1)
}
