package session

import "strings"

const (
	// Wildcard turns the draft into a prefix query.
	Wildcard = "*"
	// Conjunction joins every part of the composed query.
	Conjunction = " AND "
)

// Compose builds the backend query: confirmed terms first, then the draft as a prefix.
// An empty result means "no query", never "match all".
func Compose(terms []string, draft string) string {
	parts := make([]string, 0, len(terms)+1)
	parts = append(parts, terms...)
	if draft != "" {
		parts = append(parts, draft+Wildcard)
	}
	return strings.Join(parts, Conjunction)
}
