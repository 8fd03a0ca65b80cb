package logic

import (
	"context"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/news"
)

// coinSnapshot is a coin quote and its news. newsErr is kept apart because
// callers carry on without news.
type coinSnapshot struct {
	record  *market.CoinRecord
	items   []news.Item
	newsErr error
}

// fetchSnapshot resolves the quote first and only then asks for news, so an
// unknown or failing coin costs no news request. A news failure leaves
// items empty.
func fetchSnapshot(ctx context.Context, svcCtx *svc.ServiceContext, symbol string) (*coinSnapshot, error) {
	record, err := fetchCoin(ctx, svcCtx, symbol)
	if err != nil {
		return nil, err
	}

	snap := &coinSnapshot{record: record}
	snap.items, snap.newsErr = fetchNews(ctx, svcCtx, record.Symbol, "")
	if snap.newsErr != nil || snap.items == nil {
		snap.items = []news.Item{}
	}
	return snap, nil
}
