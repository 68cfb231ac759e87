package render

import (
	"strings"
	"testing"

	"github.com/lysyi3m/rss-digest/app/digest"
)

func TestFeedWriterRun(t *testing.T) {
	page := testPage(t, 8)

	rss, err := NewFeedWriter().Run(page)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("RSS should contain XML declaration")
	}
	if !strings.Contains(rss, `<rss version="2.0"`) {
		t.Error("RSS should contain RSS 2.0 declaration")
	}
	if !strings.Contains(rss, "<title>Cybersecurity News Digest</title>") {
		t.Error("RSS should contain channel title")
	}
	if !strings.Contains(rss, "<link>https://news.example.com/</link>") {
		t.Error("RSS should contain channel link")
	}
	if !strings.Contains(rss, `<atom:link href="https://news.example.com/feed.xml" rel="self" type="application/rss+xml" />`) {
		t.Error("RSS should contain atom:link self reference")
	}
	if !strings.Contains(rss, "<generator>RSS-Digest/test</generator>") {
		t.Error("RSS should contain generator")
	}
	if !strings.Contains(rss, "<lastBuildDate>Thu, 04 Jul 2024 16:05:00 +0000</lastBuildDate>") {
		t.Error("RSS lastBuildDate should be the newest article's time")
	}

	// Ads never reach the feed
	if strings.Count(rss, "<item>") != 8 {
		t.Errorf("Expected 8 items, got %d", strings.Count(rss, "<item>"))
	}

	if !strings.Contains(rss, `<guid isPermaLink="true">https://example.com/a</guid>`) {
		t.Error("RSS should contain permalink GUID")
	}
	if !strings.Contains(rss, "<description>Summary A</description>") {
		t.Error("RSS should contain plain-text description")
	}
	if !strings.Contains(rss, "<category>BleepingComputer</category>") {
		t.Error("RSS should carry the source as category")
	}

	first := strings.Index(rss, "Headline A")
	second := strings.Index(rss, "Headline B")
	if first < 0 || second < 0 || first > second {
		t.Error("RSS items should keep ranking order")
	}
}

func TestFeedWriterPlaceholderLinkAndEmptySummary(t *testing.T) {
	page := Page{
		Site:        Site{Title: "Digest"},
		GeneratedAt: testNow,
		Articles: []digest.Article{{
			Title:       digest.DefaultTitle,
			Link:        digest.DefaultLink,
			PublishedAt: testNow,
			Source:      "Example & Co",
		}},
	}

	rss, err := NewFeedWriter().Run(page)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(rss, "<guid") {
		t.Error("Placeholder link should not produce a GUID")
	}
	if strings.Contains(rss, "atom:link href") {
		t.Error("atom:link requires a base URL")
	}
	if !strings.Contains(rss, "<description>No description available</description>") {
		t.Error("Empty summary should use default description")
	}
	if !strings.Contains(rss, "<category>Example &amp; Co</category>") {
		t.Error("Category should be XML escaped")
	}
}

func TestFeedWriterNoArticles(t *testing.T) {
	rss, err := NewFeedWriter().Run(Page{Site: Site{Title: "Digest"}, GeneratedAt: testNow})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(rss, "<item>") {
		t.Error("RSS should contain no items")
	}
	if !strings.Contains(rss, "<lastBuildDate>Thu, 04 Jul 2024 16:05:00 +0000</lastBuildDate>") {
		t.Error("RSS lastBuildDate should fall back to generation time")
	}
}

func TestIsURLMethod(t *testing.T) {
	w := NewFeedWriter()

	testCases := []struct {
		input    string
		expected bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"item-123", false},
		{"#", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := w.isURL(tc.input); got != tc.expected {
			t.Errorf("isURL(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}
