package logic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoassist-api/internal/config"
	"cryptoassist-api/internal/svc"
	"cryptoassist-api/internal/types"
	"cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/llm"
	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/news"
	"cryptoassist-api/pkg/upstream"
)

func ptr[T any](v T) *T { return &v }

type fakeMarket struct {
	coins    []market.RawCoin
	quotes   map[string]*market.RawCoin
	listErr  error
	quoteErr error

	lastLimit  int
	lastSymbol string
}

func (f *fakeMarket) ListTopCoins(_ context.Context, limit int) ([]market.RawCoin, error) {
	f.lastLimit = limit
	return f.coins, f.listErr
}

func (f *fakeMarket) GetCoinQuote(_ context.Context, symbol string) (*market.RawCoin, error) {
	f.lastSymbol = symbol
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quotes[symbol], nil
}

type fakeNews struct {
	items []news.RawNewsItem
	err   error

	lastCoin   string
	lastFilter string
}

func (f *fakeNews) GetNews(_ context.Context, coin, filter string) ([]news.RawNewsItem, error) {
	f.lastCoin, f.lastFilter = coin, filter
	return f.items, f.err
}

type fakeCompleter struct {
	text   string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.Completion, error) {
	f.prompt = req.Prompt
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Model: "llama3:8b", Text: f.text}, nil
}

func rawCoin(name, symbol string, rank int, price float64) market.RawCoin {
	return market.RawCoin{
		Name:    ptr(name),
		Symbol:  ptr(symbol),
		CMCRank: ptr(rank),
		Quote: map[string]market.RawQuote{
			"USD": {
				Price:            ptr(price),
				MarketCap:        ptr(price * 1e7),
				PercentChange1h:  ptr(-0.25),
				PercentChange24h: ptr(2.34),
				PercentChange7d:  ptr(0.0),
				LastUpdated:      ptr("2024-01-01T00:00:00.000Z"),
			},
		},
	}
}

func rawPost(title string, votes int) news.RawNewsItem {
	return news.RawNewsItem{
		Title:  ptr(title),
		URL:    ptr("https://example.com/" + strings.ReplaceAll(title, " ", "-")),
		Source: &news.RawSource{Title: ptr("CoinDesk")},
		Votes:  &news.RawVotes{Positive: ptr(votes)},
	}
}

type fixture struct {
	svc       *svc.ServiceContext
	market    *fakeMarket
	news      *fakeNews
	completer *fakeCompleter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	btc := rawCoin("Bitcoin", "BTC", 1, 65000.5)
	eth := rawCoin("Ethereum", "ETH", 2, 3500)
	fm := &fakeMarket{
		coins:  []market.RawCoin{btc, eth, {}, {Quote: map[string]market.RawQuote{}}},
		quotes: map[string]*market.RawCoin{"BTC": &btc, "ETH": &eth},
	}
	fn := &fakeNews{items: []news.RawNewsItem{
		rawPost("low", 1), rawPost("top", 20), rawPost("mid", 5),
		rawPost("four", 4), rawPost("three", 3), rawPost("two", 2),
	}}
	fc := &fakeCompleter{text: "**Bitcoin** is up."}
	a, err := assistant.New(fc, nil)
	require.NoError(t, err)

	var c config.Config
	c.Dashboard = config.Dashboard{ListingLimit: 50, NewsLimit: 5, Title: "AI Crypto Assistant"}
	return &fixture{
		svc:       &svc.ServiceContext{Config: c, Market: fm, News: fn, Assistant: a},
		market:    fm,
		news:      fn,
		completer: fc,
	}
}

func TestListCoins(t *testing.T) {
	f := newFixture(t)

	resp, err := NewListCoinsLogic(context.Background(), f.svc).ListCoins(&types.ListCoinsRequest{})
	require.NoError(t, err)
	require.Equal(t, 50, f.market.lastLimit)
	require.Len(t, resp.Coins, 2, "coins without a symbol are skipped")
	require.Equal(t, "BTC", resp.Coins[0].Symbol)
	require.Equal(t, "Bitcoin", resp.Coins[0].Name)
	require.Equal(t, 1, *resp.Coins[0].Rank)

	_, err = NewListCoinsLogic(context.Background(), f.svc).ListCoins(&types.ListCoinsRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 10, f.market.lastLimit)
}

func TestListCoinsUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.market.listErr = &upstream.Error{Provider: "coinmarketcap", Endpoint: "listings", StatusCode: http.StatusUnauthorized}

	_, err := NewListCoinsLogic(context.Background(), f.svc).ListCoins(&types.ListCoinsRequest{})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, "failed to fetch coin list", err.Error())
	require.True(t, upstream.IsStatus(err, http.StatusUnauthorized))
}

func TestGetCoin(t *testing.T) {
	f := newFixture(t)

	resp, err := NewGetCoinLogic(context.Background(), f.svc).GetCoin(&types.CoinRequest{Symbol: " btc "})
	require.NoError(t, err)
	require.Equal(t, "BTC", f.market.lastSymbol)
	require.Equal(t, 65000.5, *resp.Coin.Price)
	require.Equal(t, 1, *resp.Coin.Rank)
	require.InDelta(t, 2.34, *resp.Coin.PercentChange24h, 1e-9)
	require.Equal(t, "2024-01-01 00:00:00", resp.UpdatedAt)
}

func TestGetCoinErrors(t *testing.T) {
	f := newFixture(t)
	l := NewGetCoinLogic(context.Background(), f.svc)

	_, err := l.GetCoin(&types.CoinRequest{Symbol: "NOPE"})
	require.ErrorIs(t, err, ErrCoinNotFound)

	_, err = l.GetCoin(&types.CoinRequest{Symbol: "  "})
	require.ErrorIs(t, err, ErrInvalidRequest)

	f.market.quoteErr = errors.New("dial tcp: connection refused")
	_, err = l.GetCoin(&types.CoinRequest{Symbol: "BTC"})
	require.EqualError(t, err, "failed to fetch coin data")
}

func TestGetCoinNews(t *testing.T) {
	f := newFixture(t)

	resp, err := NewGetCoinNewsLogic(context.Background(), f.svc).GetCoinNews(&types.CoinNewsRequest{Symbol: "eth", Filter: "rising"})
	require.NoError(t, err)
	require.Equal(t, "ETH", f.news.lastCoin)
	require.Equal(t, "rising", f.news.lastFilter)
	require.Len(t, resp.Items, 5)
	require.Equal(t, 20, resp.Items[0].Votes)
	for i := 1; i < len(resp.Items); i++ {
		assert.GreaterOrEqual(t, resp.Items[i-1].Votes, resp.Items[i].Votes)
	}

	resp, err = NewGetCoinNewsLogic(context.Background(), f.svc).GetCoinNews(&types.CoinNewsRequest{Symbol: "eth", Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	require.Empty(t, f.news.lastFilter)
}

func TestGetCoinNewsEmptyAndFailure(t *testing.T) {
	f := newFixture(t)
	f.news.items = []news.RawNewsItem{}

	resp, err := NewGetCoinNewsLogic(context.Background(), f.svc).GetCoinNews(&types.CoinNewsRequest{Symbol: "btc"})
	require.NoError(t, err)
	require.NotNil(t, resp.Items)
	require.Empty(t, resp.Items)

	f.news.err = errors.New("timeout")
	_, err = NewGetCoinNewsLogic(context.Background(), f.svc).GetCoinNews(&types.CoinNewsRequest{Symbol: "btc"})
	require.EqualError(t, err, "failed to fetch news")
}

func TestAsk(t *testing.T) {
	f := newFixture(t)

	resp, err := NewAskLogic(context.Background(), f.svc).Ask(&types.AskRequest{Symbol: "btc", Question: " What next? "})
	require.NoError(t, err)
	require.True(t, resp.Answered)
	require.Equal(t, "**Bitcoin** is up.", resp.Answer)
	require.Equal(t, "What next?", resp.Question)
	require.Empty(t, resp.Reason)
	require.Contains(t, resp.Context, "Current Bitcoin (BTC) Data:")
	require.True(t, strings.HasSuffix(resp.Context, "top. mid. four"))
	require.Contains(t, f.completer.prompt, resp.Context)
	require.Contains(t, f.completer.prompt, "- Answer in markdown format")
}

func TestAskFallbacks(t *testing.T) {
	f := newFixture(t)
	f.completer.err = errors.New("connection refused")
	f.news.err = errors.New("news down")

	resp, err := NewAskLogic(context.Background(), f.svc).Ask(&types.AskRequest{Symbol: "btc", Question: "Why?", Format: "plain text"})
	require.NoError(t, err)
	require.False(t, resp.Answered)
	require.Equal(t, assistant.DefaultFallbackMessage, resp.Answer)
	require.Equal(t, string(assistant.ReasonUnavailable), resp.Reason)
	require.True(t, strings.HasSuffix(resp.Context, "No recent news."))
	require.Contains(t, f.completer.prompt, "- Answer in plain text format")
}

func TestAskErrors(t *testing.T) {
	f := newFixture(t)
	l := NewAskLogic(context.Background(), f.svc)

	_, err := l.Ask(&types.AskRequest{Symbol: "btc", Question: " "})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = l.Ask(&types.AskRequest{Symbol: "zzz", Question: "hi"})
	require.ErrorIs(t, err, ErrCoinNotFound)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	view, err := NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{})
	require.NoError(t, err)
	require.Equal(t, "AI Crypto Assistant", view.Title)
	require.Equal(t, "BTC", view.Selected, "first listed coin is selected by default")
	require.Len(t, view.Coins, 2)
	require.NotNil(t, view.Coin)
	require.Equal(t, "$65,000.50", view.Coin.Price)
	require.Equal(t, "$650,005,000,000", view.Coin.MarketCap)
	require.Equal(t, "#1", view.Coin.Rank)
	require.Equal(t, Change{Value: "-0.25%", Direction: "down"}, view.Coin.Change1h)
	require.Equal(t, Change{Value: "2.34%", Direction: "up"}, view.Coin.Change24h)
	require.Equal(t, Change{Value: "0.00%", Direction: "flat"}, view.Coin.Change7d)
	require.Equal(t, "2024-01-01 00:00:00", view.Coin.LastUpdated)
	require.Len(t, view.News, 5)
	require.Equal(t, "top", view.News[0].Title)
	require.Equal(t, "CoinDesk", view.News[0].Source)
	require.Empty(t, view.NewsNotice)
	require.Empty(t, view.Answer)
	require.Empty(t, view.Errors)
	require.Empty(t, f.completer.prompt, "no question means no completion call")
}

func TestDashboardWithQuestion(t *testing.T) {
	f := newFixture(t)

	view, err := NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{Symbol: "eth", Question: "Is ETH staking safe?"})
	require.NoError(t, err)
	require.Equal(t, "ETH", view.Selected)
	require.True(t, view.Answered)
	require.Equal(t, "**Bitcoin** is up.", view.Answer)
	require.Contains(t, f.completer.prompt, "Current Ethereum (ETH) Data:")
}

func TestDashboardDegrades(t *testing.T) {
	f := newFixture(t)
	f.market.listErr = errors.New("down")

	view, err := NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{})
	require.NoError(t, err)
	require.True(t, view.Degraded)
	require.Equal(t, []string{msgListUnavailable}, view.Errors)
	require.Nil(t, view.Coin)

	f = newFixture(t)
	view, err = NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{Symbol: "missing"})
	require.NoError(t, err)
	require.Equal(t, []string{msgCoinUnavailable}, view.Errors)

	f = newFixture(t)
	f.news.items = nil
	f.completer.err = llm.ErrEmptyResponse
	view, err = NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{Question: "hi"})
	require.NoError(t, err)
	require.Equal(t, msgNoNews, view.NewsNotice)
	require.Empty(t, view.News)
	require.False(t, view.Answered)
	require.Equal(t, assistant.DefaultFallbackMessage, view.Answer)

	f = newFixture(t)
	f.news.err = errors.New("down")
	view, err = NewDashboardLogic(context.Background(), f.svc).Dashboard(&types.DashboardRequest{})
	require.NoError(t, err)
	require.Equal(t, msgNewsUnavailable, view.NewsNotice)
}

func TestNewsViewPlaceholders(t *testing.T) {
	v := newsView(news.Item{Votes: 3})
	require.Equal(t, "(untitled)", v.Title)
	require.Equal(t, "Unknown source", v.Source)
	require.Equal(t, 3, v.Votes)
}

func TestFormatHelpers(t *testing.T) {
	require.Equal(t, "N/A", formatUSD(nil, 2))
	require.Equal(t, "$1,234,567.89", formatUSD(ptr(1234567.891), 2))
	require.Equal(t, "$1,234,568", formatUSD(ptr(1234567.891), 0))
	require.Equal(t, "N/A", formatPercent(nil))
	require.Equal(t, "N/A", formatRank(nil))
	require.Equal(t, "#1001", formatRank(ptr(1001)))
	require.Equal(t, "1234.50%", formatPercent(ptr(1234.5)))
	require.Equal(t, "flat", direction(nil))
	require.Equal(t, "N/A", formatUpdated(&market.CoinRecord{LastUpdated: ptr("yesterday")}))
}

func TestFetchSnapshot(t *testing.T) {
	f := newFixture(t)

	snap, err := fetchSnapshot(context.Background(), f.svc, " eth ")
	require.NoError(t, err)
	require.Equal(t, "ETH", snap.record.Symbol)
	require.Equal(t, "ETH", f.news.lastCoin)
	require.Len(t, snap.items, 6)
	require.NoError(t, snap.newsErr)

	f.news.items, f.news.err = nil, errors.New("news down")
	snap, err = fetchSnapshot(context.Background(), f.svc, "btc")
	require.NoError(t, err)
	require.Error(t, snap.newsErr)
	require.NotNil(t, snap.items)
	require.Empty(t, snap.items)

	f.news.lastCoin = ""
	_, err = fetchSnapshot(context.Background(), f.svc, "zzz")
	require.ErrorIs(t, err, ErrCoinNotFound)
	require.Empty(t, f.news.lastCoin, "no news request for an unknown coin")

	f.market.quoteErr = errors.New("dial tcp: connection refused")
	_, err = fetchSnapshot(context.Background(), f.svc, "btc")
	require.EqualError(t, err, "failed to fetch coin data")
	require.Empty(t, f.news.lastCoin)
	f.market.quoteErr = nil

	_, err = fetchSnapshot(context.Background(), f.svc, "")
	require.ErrorIs(t, err, ErrInvalidRequest)
}
