package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []RawEntry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	if feed.PublishedParsed != nil {
		metadata.FeedPublishedAt = feed.PublishedParsed
	}

	entries := make([]RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.rawEntry(item))
	}

	return metadata, entries, nil
}

// rawEntry keeps the unparsed date text; timestamp parsing belongs to the
// normalizer. RSS <description> and Atom <summary> both land in Summary,
// full content is the Description fallback.
func (p *Parser) rawEntry(item *gofeed.Item) RawEntry {
	return RawEntry{
		Title:       optional(item.Title),
		Link:        optional(item.Link),
		Published:   optional(item.Published),
		Updated:     optional(item.Updated),
		Summary:     optional(item.Description),
		Description: optional(item.Content),
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
