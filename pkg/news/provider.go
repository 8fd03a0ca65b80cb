package news

import "context"

// DefaultFilter is the CryptoPanic-style ranking filter used when callers
// pass an empty one.
const DefaultFilter = "hot"

// Provider fetches recent news posts.
type Provider interface {
	// GetNews returns the provider's posts, restricted to coin when non-empty.
	// The result is never nil; zero results yield an empty slice.
	GetNews(ctx context.Context, coin, filter string) ([]RawNewsItem, error)
}

// RawNewsItem mirrors a provider post. Nil pointers were absent upstream.
type RawNewsItem struct {
	Title       *string    `json:"title"`
	URL         *string    `json:"url"`
	Source      *RawSource `json:"source"`
	PublishedAt *string    `json:"published_at"`
	Votes       *RawVotes  `json:"votes"`
}

// RawSource is the nested publisher object of a post.
type RawSource struct {
	Title  *string `json:"title"`
	Region *string `json:"region"`
	Domain *string `json:"domain"`
}

// RawVotes is the nested community vote tally of a post.
type RawVotes struct {
	Positive  *int `json:"positive"`
	Negative  *int `json:"negative"`
	Important *int `json:"important"`
}
