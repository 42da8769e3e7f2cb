package api

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a run of highlight text; Marked runs were emphasised by the backend.
type Fragment struct {
	Text   string
	Marked bool
}

// ParseHighlight splits an HTML highlight fragment into plain and <em>-marked runs.
// Adjacent text inside one <em> element is merged into a single marked fragment.
func ParseHighlight(fragment string) []Fragment {
	if fragment == "" {
		return nil
	}
	var (
		out   []Fragment
		depth int
		buf   strings.Builder
	)
	flush := func(marked bool) {
		if buf.Len() == 0 {
			return
		}
		out = append(out, Fragment{Text: buf.String(), Marked: marked})
		buf.Reset()
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush(depth > 0)
			return out
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Em {
				flush(depth > 0)
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Em && depth > 0 {
				flush(true)
				depth--
			}
		}
	}
}

// MarkedTexts returns the text of every marked fragment, in order.
func MarkedTexts(fragments []Fragment) []string {
	var out []string
	for _, f := range fragments {
		if f.Marked {
			out = append(out, f.Text)
		}
	}
	return out
}
