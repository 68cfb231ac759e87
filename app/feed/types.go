package feed

import (
	"context"
	"time"
)

// Source is one configured feed. Order in the source list is significant.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// RawEntry holds the optional text fields of one feed item as delivered by
// the feed. A nil field was absent from the feed.
type RawEntry struct {
	Title       *string
	Link        *string
	Published   *string
	Updated     *string
	Summary     *string
	Description *string
}

// Timestamp returns the published time text, falling back to the updated
// time text. ok is false when neither is present.
func (e RawEntry) Timestamp() (value string, ok bool) {
	if e.Published != nil {
		return *e.Published, true
	}
	if e.Updated != nil {
		return *e.Updated, true
	}
	return "", false
}

// Body returns the summary, falling back to the description, then "".
func (e RawEntry) Body() string {
	if e.Summary != nil {
		return *e.Summary
	}
	if e.Description != nil {
		return *e.Description
	}
	return ""
}

func (e RawEntry) TitleOr(def string) string {
	if e.Title != nil {
		return *e.Title
	}
	return def
}

func (e RawEntry) LinkOr(def string) string {
	if e.Link != nil {
		return *e.Link
	}
	return def
}

type Metadata struct {
	Title           string
	Link            string
	Description     string
	Language        string
	FeedPublishedAt *time.Time
}

// Fetcher retrieves the entries of a feed in the feed's own order.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]RawEntry, error)
}
