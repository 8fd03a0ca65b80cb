package market

import (
	"strings"
	"time"
)

// QuoteCurrency is the conversion currency requested from providers.
const QuoteCurrency = "USD"

// LastUpdatedLayout is the provider timestamp format, e.g.
// 2024-01-01T00:00:00.000000Z. Parsing accepts any fractional width.
const LastUpdatedLayout = "2006-01-02T15:04:05.000000Z"

// CoinRecord is an immutable snapshot of one coin at fetch time. Nil fields
// were absent upstream.
type CoinRecord struct {
	Name             *string  `json:"name"`
	Symbol           string   `json:"symbol"`
	Rank             *int     `json:"rank"`
	Price            *float64 `json:"price"`
	MarketCap        *float64 `json:"market_cap"`
	Volume24h        *float64 `json:"volume_24h"`
	PercentChange1h  *float64 `json:"percent_change_1h"`
	PercentChange24h *float64 `json:"percent_change_24h"`
	PercentChange7d  *float64 `json:"percent_change_7d"`
	LastUpdated      *string  `json:"last_updated"`
}

// NormalizeCoin reshapes a raw provider payload into a CoinRecord. Nil or
// empty input yields nil. A missing quote object leaves every quote-derived
// field nil.
func NormalizeCoin(raw *RawCoin) *CoinRecord {
	if raw.IsEmpty() {
		return nil
	}

	quote := raw.Quote[QuoteCurrency]
	return &CoinRecord{
		Name:             clonePtr(raw.Name),
		Symbol:           raw.SymbolOrEmpty(),
		Rank:             clonePtr(raw.CMCRank),
		Price:            clonePtr(quote.Price),
		MarketCap:        clonePtr(quote.MarketCap),
		Volume24h:        clonePtr(quote.Volume24h),
		PercentChange1h:  clonePtr(quote.PercentChange1h),
		PercentChange24h: clonePtr(quote.PercentChange24h),
		PercentChange7d:  clonePtr(quote.PercentChange7d),
		LastUpdated:      clonePtr(quote.LastUpdated),
	}
}

// DisplayName returns the coin name, falling back to the symbol.
func (c *CoinRecord) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) != "" {
		return *c.Name
	}
	return c.Symbol
}

// UpdatedAt parses LastUpdated. ok is false when absent or malformed.
func (c *CoinRecord) UpdatedAt() (t time.Time, ok bool) {
	if c == nil || c.LastUpdated == nil {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02T15:04:05.999999999Z", *c.LastUpdated)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
