package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatInitials(t *testing.T) {
	cases := map[string]string{
		"kenneth.lay@enron.com":    "KL",
		"jeff_skilling@enron.com":  "JS",
		"a-b@enron.com":            "AB",
		"skilling@enron.com":       "SK",
		"k@enron.com":              "K",
		"":                         "?",
		"undefined":                "?",
		"null":                     "?",
		"@enron.com":               "?",
		"louise.kitchen@enron.com": "LK",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatInitials(in), in)
	}
}

func TestFormatSender(t *testing.T) {
	cases := map[string]string{
		"jeff.skilling@enron.com": "Jeff Skilling",
		"KENNETH.LAY@enron.com":   "Kenneth Lay",
		"vince.j.kaminski@enron":  "Vince J Kaminski",
		"sherron@enron.com":       "Sherron",
		"._-@enron.com":           "Unknown",
		"":                        "Unknown",
		"null":                    "Unknown",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatSender(in), in)
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2001, time.May, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"Thu, 17 May 2001 09:30:00 +0000 (UTC)", "Today"},
		{"Wed, 16 May 2001 09:30:00 +0000 (UTC)", "Yesterday"},
		{"Mon, 14 May 2001 09:30:00 +0000", "Mon"},
		{"2001-03-02", "Mar 2"},
		{"Tue, 12 Dec 2000 08:00:00 -0800 (PST)", "Dec 12, 00"},
		{"2000-01-05T10:00:00Z", "Jan 5, 00"},
		{"", ""},
		{"last tuesday", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDate(tt.raw, now), tt.raw)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "line one line two", preview("line one\r\nline two", 100))
	assert.Equal(t, "abc", preview("abcdef", 3))
	long := strings.Repeat("x", 300)
	assert.Len(t, preview(long, rowPreviewLen), 100)
	assert.Len(t, preview(long, bookmarkPreviewLen), 200)
}

func TestSubjectOrPlaceholder(t *testing.T) {
	assert.Equal(t, "(no subject)", subjectOrPlaceholder("  "))
	assert.Equal(t, "Raptor", subjectOrPlaceholder("Raptor"))
}
