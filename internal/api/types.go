package api

import (
	"encoding/json"
	"fmt"
)

// QueryParams is a flat map of query-string parameters.
type QueryParams map[string]string

// --- Search Response Envelope ---

// SearchResponse mirrors the Elasticsearch-shaped payload returned by /search and /browse.
type SearchResponse struct {
	Hits HitList `json:"hits"`
}

// HitList holds the total match count and the current page of hits.
type HitList struct {
	Total Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total handles both the legacy integer form and the {"value": n} object form.
type Total int

func (t *Total) UnmarshalJSON(data []byte) error {
	// Try as number first
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Total(n)
		return nil
	}
	var obj struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode total: %w", err)
	}
	*t = Total(obj.Value)
	return nil
}

// Empty returns the synthetic zero-result response.
func Empty() *SearchResponse {
	return &SearchResponse{Hits: HitList{Total: 0, Hits: []Hit{}}}
}

// --- Hit ---

// Hit is a single matched mail.
type Hit struct {
	ID        string    `json:"_id"`
	Source    Email     `json:"_source"`
	Highlight Highlight `json:"highlight,omitempty"`
}

// Highlight carries server-side highlight fragments keyed by field.
type Highlight struct {
	To []string `json:"to,omitempty"`
}

// RecipientFragments parses the first recipient highlight into marked/unmarked fragments.
func (h Hit) RecipientFragments() []Fragment {
	if len(h.Highlight.To) == 0 {
		return nil
	}
	return ParseHighlight(h.Highlight.To[0])
}

// Email returns the hit as a standalone record carrying its id.
func (h Hit) Email() Email {
	mail := h.Source
	mail.ID = h.ID
	return mail
}

// --- Email ---

// Email is a mail record as stored in the index and in bookmarks.
type Email struct {
	ID      string `json:"id,omitempty"`
	From    string `json:"from"`
	To      string `json:"to"`
	CC      string `json:"cc,omitempty"`
	Date    string `json:"date,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}
