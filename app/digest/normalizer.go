package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/rss-digest/app/feed"
)

// Normalize converts one raw entry into an Article. Entries without a usable
// timestamp are skipped; a missing title or link is never a reason to skip.
// Timestamps that carry no zone are taken as UTC.
func Normalize(entry feed.RawEntry, source feed.Source) Result {
	raw, ok := entry.Timestamp()
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return Result{Skipped: true, Reason: SkipMissingTimestamp}
	}

	publishedAt, err := parseTimestamp(raw)
	if err != nil {
		return Result{Skipped: true, Reason: SkipUnparseableTimestamp, Err: err}
	}

	return Result{
		Article: Article{
			Title:            entry.TitleOr(DefaultTitle),
			Link:             entry.LinkOr(DefaultLink),
			PublishedAt:      publishedAt,
			PublishedDisplay: publishedAt.Format(DisplayLayout),
			Summary:          entry.Body(),
			Source:           source.Name,
		},
	}
}

func parseTimestamp(raw string) (t time.Time, err error) {
	// dateparse panics on a handful of degenerate inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse timestamp %q: %v", raw, r)
		}
	}()

	t, err = dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", raw, err)
	}
	return resolveZone(t), nil
}

// North American zone names allowed in RFC 822 dates.
var rfc822Zones = map[string]int{
	"EST": -5 * 60 * 60,
	"EDT": -4 * 60 * 60,
	"CST": -6 * 60 * 60,
	"CDT": -5 * 60 * 60,
	"MST": -7 * 60 * 60,
	"MDT": -6 * 60 * 60,
	"PST": -8 * 60 * 60,
	"PDT": -7 * 60 * 60,
}

// resolveZone fixes times whose zone abbreviation the parser could not look
// up. Those come back as a named zone with a zero offset: known RFC 822 names
// get their real offset at the same wall clock, anything else (GMT, UT, ...)
// becomes UTC so the label never contradicts the instant.
func resolveZone(t time.Time) time.Time {
	name, offset := t.Zone()
	if offset != 0 || t.Location() == time.UTC {
		return t
	}

	if zoneOffset, ok := rfc822Zones[strings.ToUpper(name)]; ok {
		year, month, day := t.Date()
		hour, minute, sec := t.Clock()
		return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), time.FixedZone(strings.ToUpper(name), zoneOffset))
	}

	return t.In(time.UTC)
}
