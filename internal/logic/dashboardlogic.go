package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/news"
)

const (
	msgCoinUnavailable = "Failed to fetch data for the selected coin. Please try another one."
	msgListUnavailable = "Failed to fetch the cryptocurrency list."
	msgNewsUnavailable = "Failed to fetch news for this cryptocurrency."
	msgNoNews          = "No recent news found for this cryptocurrency."
	msgSelectCoin      = "Please select a cryptocurrency."
)

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Title    string
	Coins    []types.CoinSummary
	Selected string
	Coin     *CoinView
	News     []NewsView
	// NewsNotice replaces the news list when it is empty or failed.
	NewsNotice string
	Question   string
	Answer     string
	Answered   bool
	Errors     []string
	// Degraded is set when the coin list could not be loaded.
	Degraded bool
}

type CoinView struct {
	Name        string
	Symbol      string
	Price       string
	MarketCap   string
	Rank        string
	Change1h    Change
	Change24h   Change
	Change7d    Change
	LastUpdated string
}

type Change struct {
	Value     string
	Direction string
}

type NewsView struct {
	Title       string
	URL         string
	Source      string
	PublishedAt string
	Votes       int
}

type DashboardLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDashboardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DashboardLogic {
	return &DashboardLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Dashboard assembles the page. Provider failures become messages on the
// page instead of errors so the rest of it still renders.
func (l *DashboardLogic) Dashboard(req *types.DashboardRequest) (*DashboardView, error) {
	dash := l.svcCtx.Config.Dashboard
	view := &DashboardView{
		Title:    dash.Title,
		Question: strings.TrimSpace(req.Question),
	}

	listed, err := NewListCoinsLogic(l.ctx, l.svcCtx).ListCoins(&types.ListCoinsRequest{})
	if err != nil {
		view.Degraded = true
		view.Errors = append(view.Errors, msgListUnavailable)
	} else {
		view.Coins = listed.Coins
	}

	view.Selected = normalizeSymbol(req.Symbol)
	if view.Selected == "" && len(view.Coins) > 0 {
		view.Selected = view.Coins[0].Symbol
	}
	if view.Selected == "" {
		if !view.Degraded {
			view.Errors = append(view.Errors, msgSelectCoin)
		}
		return view, nil
	}

	snap, err := fetchSnapshot(l.ctx, l.svcCtx, view.Selected)
	if err != nil {
		if errors.Is(err, ErrCoinNotFound) {
			l.Infof("dashboard coin %s not found", view.Selected)
		}
		view.Errors = append(view.Errors, msgCoinUnavailable)
		return view, nil
	}
	record, items := snap.record, snap.items
	view.Coin = coinView(record)

	switch {
	case snap.newsErr != nil:
		view.NewsNotice = msgNewsUnavailable
	case len(items) == 0:
		view.NewsNotice = msgNoNews
	}
	for _, item := range news.Top(items, dash.NewsLimit) {
		view.News = append(view.News, newsView(item))
	}

	if view.Question != "" {
		cfg := l.svcCtx.Assistant.Config()
		contextBlock := assistant.AssembleContext(record, items, cfg.MaxNews)
		answer := l.svcCtx.Assistant.Ask(l.ctx, view.Question, contextBlock, "")
		view.Answer = answer.OrFallback(cfg.FallbackMessage)
		view.Answered = answer.OK()
	}
	return view, nil
}

func coinView(record *market.CoinRecord) *CoinView {
	return &CoinView{
		Name:        record.DisplayName(),
		Symbol:      record.Symbol,
		Price:       formatUSD(record.Price, 2),
		MarketCap:   formatUSD(record.MarketCap, 0),
		Rank:        formatRank(record.Rank),
		Change1h:    Change{Value: formatPercent(record.PercentChange1h), Direction: direction(record.PercentChange1h)},
		Change24h:   Change{Value: formatPercent(record.PercentChange24h), Direction: direction(record.PercentChange24h)},
		Change7d:    Change{Value: formatPercent(record.PercentChange7d), Direction: direction(record.PercentChange7d)},
		LastUpdated: formatUpdated(record),
	}
}

func newsView(item news.Item) NewsView {
	v := NewsView{
		Title:       deref(item.Title),
		URL:         deref(item.URL),
		Source:      deref(item.Source),
		PublishedAt: deref(item.PublishedAt),
		Votes:       item.Votes,
	}
	if v.Title == "" {
		v.Title = "(untitled)"
	}
	if v.Source == "" {
		v.Source = "Unknown source"
	}
	return v
}
