// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import (
	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/news"
)

type ListCoinsRequest struct {
	Limit int `form:"limit,optional"`
}

type CoinSummary struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Rank   *int   `json:"rank"`
}

type ListCoinsResponse struct {
	Coins []CoinSummary `json:"coins"`
}

type CoinRequest struct {
	Symbol string `path:"symbol"`
}

type CoinResponse struct {
	Coin      *market.CoinRecord `json:"coin"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

type CoinNewsRequest struct {
	Symbol string `path:"symbol"`
	Filter string `form:"filter,optional"`
	Limit  int    `form:"limit,optional"`
}

type CoinNewsResponse struct {
	Symbol string      `json:"symbol"`
	Filter string      `json:"filter"`
	Items  []news.Item `json:"items"`
}

type AskRequest struct {
	Symbol   string `path:"symbol"`
	Question string `json:"question"`
	Format   string `json:"format,optional"`
}

type AskResponse struct {
	Symbol   string `json:"symbol"`
	Question string `json:"question"`
	Context  string `json:"context"`
	Answer   string `json:"answer"`
	Answered bool   `json:"answered"`
	Reason   string `json:"reason,omitempty"`
	Model    string `json:"model,omitempty"`
}

type DashboardRequest struct {
	Symbol   string `form:"symbol,optional"`
	Question string `form:"q,optional"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
