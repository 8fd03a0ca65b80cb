package coinmarketcap

import "cryptoassist-api/pkg/market"

// status is the envelope header present on every response.
type status struct {
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
	CreditCount  int     `json:"credit_count"`
}

type listingsResponse struct {
	Status status           `json:"status"`
	Data   []market.RawCoin `json:"data"`
}

type quotesResponse struct {
	Status status                    `json:"status"`
	Data   map[string]market.RawCoin `json:"data"`
}
