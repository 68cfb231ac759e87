package render

import (
	"time"

	"github.com/lysyi3m/rss-digest/app/digest"
)

// LastUpdatedLayout renders e.g. "January 02, 2024 at 03:04 PM EST".
const LastUpdatedLayout = "January 02, 2006 at 03:04 PM MST"

type Site struct {
	Title       string
	Description string
	BaseUrl     string
	Version     string
}

type Page struct {
	Site        Site
	Items       []digest.RenderItem
	Articles    []digest.Article // ranked articles without ad slots, for the RSS copy
	LastUpdated string
	Year        int
	GeneratedAt time.Time
}

// NewPage stamps the page with now as seen in loc. The clock is always passed
// in so output is reproducible.
func NewPage(site Site, articles []digest.Article, items []digest.RenderItem, now time.Time, loc *time.Location) Page {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	return Page{
		Site:        site,
		Items:       items,
		Articles:    articles,
		LastUpdated: local.Format(LastUpdatedLayout),
		Year:        local.Year(),
		GeneratedAt: now,
	}
}
