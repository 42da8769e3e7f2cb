package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/session"
	"github.com/gravitrone/mailsearch/cli/internal/ui/components"
)

const subjectColumnWidth = 60

// resultPage is the --json shape for search and browse.
type resultPage struct {
	Query      string      `json:"query,omitempty"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Suggestion string      `json:"suggestion,omitempty"`
	Mails      []api.Email `json:"mails"`
}

func newResultPage(query string, page, pageSize int, resp *api.SearchResponse) resultPage {
	total := int(resp.Hits.Total)
	mails := make([]api.Email, len(resp.Hits.Hits))
	for i, h := range resp.Hits.Hits {
		mails[i] = h.Email()
	}
	return resultPage{
		Query:      query,
		Total:      total,
		Page:       page + 1,
		TotalPages: session.ComputeBounds(page, total, pageSize).TotalPages,
		Mails:      mails,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultPage(w io.Writer, p resultPage) error {
	if p.Total == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	fmt.Fprintf(w, "%d results, page %d of %d\n", p.Total, p.Page, max(p.TotalPages, 1))
	if p.Suggestion != "" {
		fmt.Fprintf(w, "suggestion: %s\n", components.SanitizeOneLine(p.Suggestion))
	}
	_, err := fmt.Fprintln(w, mailTable(p.Mails))
	return err
}

// mailText renders one mail as headers followed by the body.
func mailText(m api.Email) string {
	headers := components.Fields([]components.TableRow{
		{Label: "From", Value: m.From},
		{Label: "To", Value: m.To},
		{Label: "CC", Value: m.CC},
		{Label: "Date", Value: m.Date},
		{Label: "Subject", Value: m.Subject},
	}, 0)
	return headers + "\n\n" + components.SanitizeText(m.Body)
}

func mailTable(mails []api.Email) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DATE", "FROM", "SUBJECT")
	for _, m := range mails {
		subject := m.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		t.Row(
			components.SanitizeOneLine(m.ID),
			components.SanitizeOneLine(m.Date),
			components.SanitizeOneLine(m.From),
			components.ClampTextWidth(subject, subjectColumnWidth),
		)
	}
	return t.Render()
}
