package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/market"
)

type ListCoinsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListCoinsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListCoinsLogic {
	return &ListCoinsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListCoinsLogic) ListCoins(req *types.ListCoinsRequest) (resp *types.ListCoinsResponse, err error) {
	limit := req.Limit
	if limit <= 0 {
		limit = l.svcCtx.Config.Dashboard.ListingLimit
	}
	if limit <= 0 {
		limit = market.DefaultListingLimit
	}

	raw, err := l.svcCtx.Market.ListTopCoins(l.ctx, limit)
	if err != nil {
		return nil, fetchFailed(l.ctx, "coin list", err)
	}

	coins := make([]types.CoinSummary, 0, len(raw))
	for i := range raw {
		record := market.NormalizeCoin(&raw[i])
		if record == nil || record.Symbol == "" {
			continue
		}
		coins = append(coins, types.CoinSummary{
			Symbol: record.Symbol,
			Name:   record.DisplayName(),
			Rank:   record.Rank,
		})
	}
	l.Debugf("listed %d coins (requested %d)", len(coins), limit)
	return &types.ListCoinsResponse{Coins: coins}, nil
}
