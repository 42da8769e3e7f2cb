package session

import (
	"strings"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// ExtractSuggestion derives the type-ahead hint from the first hit: the first marked
// recipient candidate that is not already a term, else the sender when it contains the
// draft. It yields nothing for an empty draft or an empty page.
func ExtractSuggestion(hits []api.Hit, draft string, terms TermSet) (string, bool) {
	if draft == "" || len(hits) == 0 {
		return "", false
	}
	first := hits[0]
	if candidate, ok := FirstUnselected(api.MarkedTexts(first.RecipientFragments()), terms); ok {
		return candidate, true
	}
	if first.Source.From != "" && strings.Contains(first.Source.From, draft) {
		return first.Source.From, true
	}
	return "", false
}

// FirstUnselected returns the first candidate that is not an active term.
func FirstUnselected(candidates []string, terms TermSet) (string, bool) {
	for _, c := range candidates {
		if c == "" || terms.Contains(c) {
			continue
		}
		return c, true
	}
	return "", false
}
