package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/market"
)

type GetCoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetCoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetCoinLogic {
	return &GetCoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetCoinLogic) GetCoin(req *types.CoinRequest) (resp *types.CoinResponse, err error) {
	record, err := fetchCoin(l.ctx, l.svcCtx, req.Symbol)
	if err != nil {
		return nil, err
	}
	resp = &types.CoinResponse{Coin: record}
	if ts, ok := record.UpdatedAt(); ok {
		resp.UpdatedAt = ts.Format(displayLayout)
	}
	return resp, nil
}

// fetchCoin loads and normalizes one quote. Absence maps to ErrCoinNotFound.
func fetchCoin(ctx context.Context, svcCtx *svc.ServiceContext, symbol string) (*market.CoinRecord, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidRequest
	}
	raw, err := svcCtx.Market.GetCoinQuote(ctx, symbol)
	if err != nil {
		return nil, fetchFailed(ctx, "coin data", err)
	}
	record := market.NormalizeCoin(raw)
	if record == nil {
		return nil, ErrCoinNotFound
	}
	return record, nil
}
