package ui

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	rowPreviewLen      = 100
	bookmarkPreviewLen = 200
	noSubject          = "(no subject)"
)

var (
	localPartSep = regexp.MustCompile(`[._-]`)
	// Enron headers end the date with a zone comment such as "(PDT)".
	zoneComment = regexp.MustCompile(`\s*\([A-Za-z]+\)\s*$`)
	lineBreaks  = regexp.MustCompile(`[\r\n]+`)
)

var mailDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func missingAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	return addr == "" || addr == "undefined" || addr == "null"
}

func localPart(addr string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(addr), "@")
	return name
}

func nameParts(name string) []string {
	var parts []string
	for _, p := range localPartSep.Split(name, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// formatInitials derives a two-letter avatar from an address: "kenneth.lay@enron.com"
// gives "KL", "skilling@enron.com" gives "SK".
func formatInitials(addr string) string {
	if missingAddress(addr) {
		return "?"
	}
	name := localPart(addr)
	if name == "" {
		return "?"
	}
	if parts := nameParts(name); len(parts) >= 2 {
		a, _ := utf8.DecodeRuneInString(parts[0])
		b, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{a, b}))
	}
	runes := []rune(name)
	if len(runes) >= 2 {
		return strings.ToUpper(string(runes[:2]))
	}
	return strings.ToUpper(string(runes[0]))
}

// formatSender turns an address into a display name: "jeff.skilling@enron.com" gives
// "Jeff Skilling".
func formatSender(addr string) string {
	if missingAddress(addr) {
		return "Unknown"
	}
	parts := nameParts(localPart(addr))
	if len(parts) == 0 {
		return "Unknown"
	}
	for i, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func parseMailDate(raw string) (time.Time, bool) {
	raw = zoneComment.ReplaceAllString(strings.TrimSpace(raw), "")
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range mailDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a mail date relative to now: Today, Yesterday, a weekday within the
// last week, "Jan 2" within the year and "Jan 2, 06" before that. Unparseable dates render
// as "".
func formatDate(raw string, now time.Time) string {
	date, ok := parseMailDate(raw)
	if !ok {
		return ""
	}
	date = date.In(now.Location())
	days := int(math.Floor(now.Sub(date).Hours() / 24))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return date.Format("Mon")
	case date.Year() == now.Year():
		return date.Format("Jan 2")
	default:
		return date.Format("Jan 2, 06")
	}
}

// preview flattens a body onto one line and cuts it to n runes.
func preview(body string, n int) string {
	flat := lineBreaks.ReplaceAllString(body, " ")
	runes := []rune(flat)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func subjectOrPlaceholder(subject string) string {
	if strings.TrimSpace(subject) == "" {
		return noSubject
	}
	return subject
}
