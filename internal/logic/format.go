package logic

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cryptoassist-api/pkg/market"
)

const (
	notAvailable  = "N/A"
	displayLayout = "2006-01-02 15:04:05"
)

var printer = message.NewPrinter(language.English)

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func formatUSD(v *float64, decimals int) string {
	if v == nil {
		return notAvailable
	}
	if decimals == 0 {
		return printer.Sprintf("$%.0f", *v)
	}
	return printer.Sprintf("$%.2f", *v)
}

func formatPercent(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func formatRank(v *int) string {
	if v == nil {
		return notAvailable
	}
	return "#" + strconv.Itoa(*v)
}

// direction classifies a change for styling: up, down or flat.
func direction(v *float64) string {
	switch {
	case v == nil || *v == 0:
		return "flat"
	case *v > 0:
		return "up"
	default:
		return "down"
	}
}

func formatUpdated(coin *market.CoinRecord) string {
	ts, ok := coin.UpdatedAt()
	if !ok {
		return notAvailable
	}
	return ts.UTC().Format(displayLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
