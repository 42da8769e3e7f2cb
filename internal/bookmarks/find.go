package bookmarks

import (
	"github.com/sahilm/fuzzy"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// Match is a bookmark matched by Find.
type Match struct {
	Email api.Email
	Score int
}

type emailSource []api.Email

func (s emailSource) String(i int) string {
	m := s[i]
	return m.From + " " + m.To + " " + m.Subject
}

func (s emailSource) Len() int { return len(s) }

// Find fuzzy-matches pattern against sender, recipients and subject, best first.
func (b *Book) Find(pattern string) []Match {
	if pattern == "" || len(b.items) == 0 {
		return nil
	}
	src := emailSource(b.items)
	results := fuzzy.FindFrom(pattern, src)
	out := make([]Match, 0, len(results))
	for _, r := range results {
		out = append(out, Match{Email: src[r.Index], Score: r.Score})
	}
	return out
}
