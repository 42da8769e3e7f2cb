package session

// TermSet is the ordered list of confirmed search terms. Duplicates are allowed;
// removal drops every equal entry.
type TermSet struct {
	terms []string
}

// NewTermSet builds a set from existing terms, skipping empty ones.
func NewTermSet(terms ...string) TermSet {
	var s TermSet
	for _, t := range terms {
		s.Confirm(t)
	}
	return s
}

// Confirm appends token when non-empty and reports whether it was added.
func (s *TermSet) Confirm(token string) bool {
	if token == "" {
		return false
	}
	s.terms = append(s.terms, token)
	return true
}

// Remove deletes every element equal to token and returns how many were dropped.
func (s *TermSet) Remove(token string) int {
	kept := s.terms[:0]
	removed := 0
	for _, t := range s.terms {
		if t == token {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.terms = kept
	return removed
}

// Contains reports whether token is an active term.
func (s TermSet) Contains(token string) bool {
	for _, t := range s.terms {
		if t == token {
			return true
		}
	}
	return false
}

// Terms returns a copy of the terms in insertion order.
func (s TermSet) Terms() []string {
	if len(s.terms) == 0 {
		return nil
	}
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Last returns the most recently confirmed term.
func (s TermSet) Last() (string, bool) {
	if len(s.terms) == 0 {
		return "", false
	}
	return s.terms[len(s.terms)-1], true
}

// Len returns the number of terms, duplicates included.
func (s TermSet) Len() int {
	return len(s.terms)
}
