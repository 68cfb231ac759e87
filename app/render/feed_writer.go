package render

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/rss-digest/app/digest"
)

// FeedWriter renders the ranked articles as an RSS 2.0 channel. Ad slots are
// a page concern and never appear in the feed.
type FeedWriter struct{}

func NewFeedWriter() *FeedWriter {
	return &FeedWriter{}
}

func (w *FeedWriter) Run(page Page) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	w.writeElement(&buf, "title", page.Site.Title, 4)

	baseUrl := strings.TrimRight(page.Site.BaseUrl, "/")
	if baseUrl != "" {
		w.writeElement(&buf, "link", baseUrl+"/", 4)
	}
	w.writeElement(&buf, "description", cmp.Or(page.Site.Description, fmt.Sprintf("Latest headlines collected by %s", page.Site.Title)), 4)

	if baseUrl != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(baseUrl+"/"+FeedFile)))
	}

	lastBuildDate := page.GeneratedAt
	if len(page.Articles) > 0 {
		lastBuildDate = page.Articles[0].PublishedAt
	}
	if !lastBuildDate.IsZero() {
		w.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	}
	w.writeElement(&buf, "generator", fmt.Sprintf("RSS-Digest/%s", cmp.Or(page.Site.Version, "dev")), 4)

	for _, article := range page.Articles {
		w.writeItem(&buf, article)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (w *FeedWriter) writeItem(buf *bytes.Buffer, article digest.Article) {
	buf.WriteString("    <item>\n")

	if article.Link != "" && article.Link != digest.DefaultLink {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", w.isURL(article.Link)))
		xml.EscapeText(buf, []byte(article.Link))
		buf.WriteString("</guid>\n")
		w.writeElement(buf, "link", article.Link, 6)
	}

	w.writeElement(buf, "title", article.Title, 6)
	w.writeElement(buf, "description", cmp.Or(plainSummary(article.Summary), "No description available"), 6)
	w.writeElement(buf, "pubDate", article.PublishedAt.Format(time.RFC1123Z), 6)
	w.writeElement(buf, "category", article.Source, 6)

	buf.WriteString("    </item>\n")
}

func (w *FeedWriter) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (w *FeedWriter) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
