package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

func TestSearchInitStartsCursorBlink(t *testing.T) {
	model := newTestSearch(nil, nil)
	assert.NotNil(t, model.Init())
}

func TestSearchViewRendersEmptyAndPopulatedStates(t *testing.T) {
	model := newTestSearch(nil, nil)
	model.setSize(100, 40)

	out := model.View()
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "Type to search.")

	// Inject a result directly to avoid needing a live client.
	d := model.sess.Confirm("projectx")
	model, _ = model.Update(searchResultMsg{
		version: d.Request.Version,
		resp: &api.SearchResponse{Hits: api.HitList{Total: 1, Hits: []api.Hit{
			{ID: "m1", Source: api.Email{From: "kenneth.lay@enron.com", Subject: "Alpha"}},
		}}},
		scroll: true,
	})

	out = model.View()
	assert.Contains(t, out, "projectx")
	assert.Contains(t, out, "1 results")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "KL")
	assert.NotContains(t, out, "Page 1", "single page hides pagination")
}

func TestSearchViewShowsSpinnerWhileFirstSearchLoads(t *testing.T) {
	model := newTestSearch(nil, nil)
	model.sess.Confirm("projectx")
	assert.Contains(t, model.View(), "Searching...")
}
