package digest

// InjectAds places an ad slot immediately before every article whose index i
// satisfies i > 0 and i % cadence == 0. Cadence counts article positions only.
// A cadence <= 0 disables ads.
func InjectAds(articles []Article, cadence int) []RenderItem {
	items := make([]RenderItem, 0, len(articles)+adCount(len(articles), cadence))
	for i := range articles {
		if cadence > 0 && i > 0 && i%cadence == 0 {
			items = append(items, AdSlot())
		}
		items = append(items, RenderItem{Article: &articles[i]})
	}
	return items
}

func adCount(n, cadence int) int {
	if cadence <= 0 || n <= 1 {
		return 0
	}
	return (n - 1) / cadence
}
