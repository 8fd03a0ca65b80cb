package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/news"
)

// DefaultMaxNews is the number of headlines folded into a context block.
const DefaultMaxNews = 3

const (
	placeholder = "N/A"
	noNews      = "No recent news."
	titleSep    = ". "
)

var printer = message.NewPrinter(language.English)

// AssembleContext renders the grounding block handed to the model: the coin
// snapshot followed by the titles of the first maxNews items. Items are
// expected in ranked order. Missing values render as N/A.
func AssembleContext(coin *market.CoinRecord, items []news.Item, maxNews int) string {
	if maxNews <= 0 {
		maxNews = DefaultMaxNews
	}
	if coin == nil {
		coin = &market.CoinRecord{}
	}

	name := placeholder
	if coin.Name != nil && strings.TrimSpace(*coin.Name) != "" {
		name = *coin.Name
	}
	symbol := placeholder
	if strings.TrimSpace(coin.Symbol) != "" {
		symbol = coin.Symbol
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current %s (%s) Data:\n", name, symbol)
	fmt.Fprintf(&b, "- Price: %s\n", money(coin.Price, 2))
	fmt.Fprintf(&b, "- Market Cap: %s (Rank #%s)\n", money(coin.MarketCap, 0), rank(coin.Rank))
	fmt.Fprintf(&b, "- 24h Change: %s\n", percent(coin.PercentChange24h))
	b.WriteString("\nLatest News:\n")

	titles := news.Titles(news.Top(items, maxNews))
	if len(titles) == 0 {
		b.WriteString(noNews)
	} else {
		b.WriteString(strings.Join(titles, titleSep))
	}
	return b.String()
}

// money formats v in dollars with thousands grouping and 0 or 2 decimals.
func money(v *float64, decimals int) string {
	if v == nil {
		return placeholder
	}
	if decimals == 0 {
		return "$" + printer.Sprintf("%.0f", *v)
	}
	return "$" + printer.Sprintf("%.2f", *v)
}

func percent(v *float64) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func rank(v *int) string {
	if v == nil {
		return placeholder
	}
	return strconv.Itoa(*v)
}
