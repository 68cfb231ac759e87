package digest

import (
	"time"

	"github.com/lysyi3m/rss-digest/app/feed"
)

const (
	DefaultTitle = "No Title"
	DefaultLink  = "#"

	// DisplayLayout renders e.g. "Jan 02, 2024 - 15:04 UTC".
	DisplayLayout = "Jan 02, 2006 - 15:04 MST"
)

type Article struct {
	Title            string
	Link             string
	PublishedAt      time.Time
	PublishedDisplay string // frozen at normalization time
	Summary          string
	Source           string
}

// RenderItem is either an article or an ad placeholder.
type RenderItem struct {
	IsAd    bool
	Article *Article
}

func AdSlot() RenderItem {
	return RenderItem{IsAd: true}
}

type SkipReason string

const (
	SkipMissingTimestamp     SkipReason = "missing_timestamp"
	SkipUnparseableTimestamp SkipReason = "unparseable_timestamp"
)

// Result is the outcome of normalizing one entry: either an Article, or a
// skip with its reason.
type Result struct {
	Article Article
	Skipped bool
	Reason  SkipReason
	Err     error
}

type Skip struct {
	Index  int // position in the source's fetched entries
	Title  string
	Reason SkipReason
	Err    error
}

type SourceReport struct {
	Source  feed.Source
	Fetched int
	Kept    int
	Skipped []Skip
	Err     error
}

// Report is the outcome of one aggregation run. Sources are listed in
// configuration order.
type Report struct {
	Articles []Article
	Sources  []SourceReport
}

func (r *Report) FailedSources() []SourceReport {
	var failed []SourceReport
	for _, s := range r.Sources {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}
