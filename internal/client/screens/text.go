package screens

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// PreviewLength is the number of characters of a summary shown in lists.
const PreviewLength = 100

var textPolicy = bluemonday.StrictPolicy()

// Sanitize strips markup from backend text so that only plain text reaches
// the terminal.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// Truncate shortens s to max characters and marks the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// FormatTimestamp renders an ISO-8601 history timestamp in loc. Timestamps
// without a zone are read as wall clock in loc. Unparseable input is
// returned unchanged.
func FormatTimestamp(ts string, loc *time.Location) string {
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, ts, loc)
		if err == nil {
			return t.In(loc).Format("1/2/2006, 3:04:05 PM")
		}
	}
	return ts
}
