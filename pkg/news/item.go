package news

import "sort"

// Item is a normalized news post. Votes counts positive community votes.
type Item struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Source      *string `json:"source"`
	PublishedAt *string `json:"published_at"`
	Votes       int     `json:"votes"`
}

// Normalize reshapes raw posts and orders them by Votes, highest first.
// Ties keep their upstream order. The result has the same length as raw.
func Normalize(raw []RawNewsItem) []Item {
	items := make([]Item, 0, len(raw))
	for i := range raw {
		items = append(items, normalizeItem(&raw[i]))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Votes > items[j].Votes
	})
	return items
}

// Top returns at most n leading items. n <= 0 returns all of them.
func Top(items []Item, n int) []Item {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

// Titles collects the non-nil titles of items in order.
func Titles(items []Item) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		if item.Title != nil {
			titles = append(titles, *item.Title)
		}
	}
	return titles
}

func normalizeItem(raw *RawNewsItem) Item {
	item := Item{
		Title:       clonePtr(raw.Title),
		URL:         clonePtr(raw.URL),
		PublishedAt: clonePtr(raw.PublishedAt),
	}
	if raw.Source != nil {
		item.Source = clonePtr(raw.Source.Title)
	}
	if raw.Votes != nil && raw.Votes.Positive != nil && *raw.Votes.Positive > 0 {
		item.Votes = *raw.Votes.Positive
	}
	return item
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
