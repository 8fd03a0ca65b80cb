package market

import "context"

// DefaultListingLimit is the number of coins requested when callers pass a
// non-positive limit to ListTopCoins.
const DefaultListingLimit = 50

// Provider exposes a market-data source ranked by market capitalisation.
type Provider interface {
	// ListTopCoins returns up to limit coin summaries ordered by rank.
	ListTopCoins(ctx context.Context, limit int) ([]RawCoin, error)
	// GetCoinQuote returns the live quote for symbol, or nil when the
	// provider has no entry for it. A missing entry is not an error.
	GetCoinQuote(ctx context.Context, symbol string) (*RawCoin, error)
}

// RawCoin mirrors a provider coin payload. Every field is optional; a nil
// pointer means the provider omitted it.
type RawCoin struct {
	ID      *int                `json:"id"`
	Slug    *string             `json:"slug"`
	Name    *string             `json:"name"`
	Symbol  *string             `json:"symbol"`
	CMCRank *int                `json:"cmc_rank"`
	Quote   map[string]RawQuote `json:"quote"`
}

// RawQuote holds the per-currency quote values of a RawCoin.
type RawQuote struct {
	Price            *float64 `json:"price"`
	Volume24h        *float64 `json:"volume_24h"`
	MarketCap        *float64 `json:"market_cap"`
	PercentChange1h  *float64 `json:"percent_change_1h"`
	PercentChange24h *float64 `json:"percent_change_24h"`
	PercentChange7d  *float64 `json:"percent_change_7d"`
	LastUpdated      *string  `json:"last_updated"`
}

// IsEmpty reports whether the payload carries no data at all. An empty but
// present quote object still counts as data.
func (r *RawCoin) IsEmpty() bool {
	return r == nil || (r.ID == nil && r.Slug == nil && r.Name == nil &&
		r.Symbol == nil && r.CMCRank == nil && r.Quote == nil)
}

// SymbolOrEmpty returns the ticker, or "" when absent.
func (r *RawCoin) SymbolOrEmpty() string {
	if r == nil || r.Symbol == nil {
		return ""
	}
	return *r.Symbol
}
