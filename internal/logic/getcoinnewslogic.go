package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/news"
)

type GetCoinNewsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetCoinNewsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetCoinNewsLogic {
	return &GetCoinNewsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetCoinNewsLogic) GetCoinNews(req *types.CoinNewsRequest) (resp *types.CoinNewsResponse, err error) {
	symbol := normalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = l.svcCtx.Config.Dashboard.NewsLimit
	}

	items, err := fetchNews(l.ctx, l.svcCtx, symbol, req.Filter)
	if err != nil {
		return nil, err
	}
	return &types.CoinNewsResponse{
		Symbol: symbol,
		Filter: req.Filter,
		Items:  news.Top(items, limit),
	}, nil
}

// fetchNews returns every normalized item for symbol, ranked by votes.
func fetchNews(ctx context.Context, svcCtx *svc.ServiceContext, symbol, filter string) ([]news.Item, error) {
	raw, err := svcCtx.News.GetNews(ctx, symbol, filter)
	if err != nil {
		return nil, fetchFailed(ctx, "news", err)
	}
	return news.Normalize(raw), nil
}
