package render

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const maxSummaryRunes = 300

var stripPolicy = bluemonday.StrictPolicy()

// plainSummary strips all markup from a feed summary, collapses whitespace
// and limits its length so one verbose feed can't flood the page.
func plainSummary(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) <= maxSummaryRunes {
		return s
	}

	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:maxSummaryRunes]), " ")
	return cut + "…"
}
