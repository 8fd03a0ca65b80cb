package coinmarketcap

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cryptoassist-api/pkg/confkit"
	"cryptoassist-api/pkg/market"
	"cryptoassist-api/pkg/upstream"
)

const (
	// ProviderType is the registry key for this provider.
	ProviderType = "coinmarketcap"
	// APIKeyEnv holds the provider credential.
	APIKeyEnv = "COINMARKETCAP_API_KEY"

	defaultBaseURL = "https://pro-api.coinmarketcap.com/v1"
	apiKeyHeader   = "X-CMC_PRO_API_KEY"

	listingsPath = "cryptocurrency/listings/latest"
	quotesPath   = "cryptocurrency/quotes/latest"
)

// Client talks to the CoinMarketCap Pro API and implements market.Provider.
type Client struct {
	api *upstream.Client
}

var _ market.Provider = (*Client)(nil)

type clientOptions struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		if strings.TrimSpace(u) != "" {
			o.baseURL = u
		}
	}
}

// WithAPIKey sets the credential instead of reading COINMARKETCAP_API_KEY.
func WithAPIKey(key string) Option {
	return func(o *clientOptions) {
		o.apiKey = key
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero keeps transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// NewClient constructs a client. It fails with *confkit.CredentialError when
// no API key is configured or present in the environment.
func NewClient(opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	key, err := confkit.Credential(ProviderType, o.apiKey, APIKeyEnv)
	if err != nil {
		return nil, err
	}

	apiOpts := []upstream.Option{
		upstream.WithTimeout(o.timeout),
		upstream.WithHeader("Accepts", "application/json"),
		upstream.WithHeader(apiKeyHeader, key),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, upstream.WithHTTPClient(o.httpClient))
	}
	return &Client{api: upstream.NewClient(ProviderType, o.baseURL, apiOpts...)}, nil
}

// ListTopCoins fetches the listings ranked by market cap, starting at rank 1.
func (c *Client) ListTopCoins(ctx context.Context, limit int) ([]market.RawCoin, error) {
	if limit <= 0 {
		limit = market.DefaultListingLimit
	}
	query := url.Values{}
	query.Set("start", "1")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("convert", market.QuoteCurrency)

	var resp listingsResponse
	if err := c.api.GetJSON(ctx, listingsPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []market.RawCoin{}, nil
	}
	return resp.Data, nil
}

// GetCoinQuote fetches the latest quote for symbol. It returns nil, nil when
// the response carries no entry for the symbol.
func (c *Client) GetCoinQuote(ctx context.Context, symbol string) (*market.RawCoin, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	query := url.Values{}
	query.Set("symbol", sym)
	query.Set("convert", market.QuoteCurrency)

	var resp quotesResponse
	if err := c.api.GetJSON(ctx, quotesPath, query, &resp); err != nil {
		return nil, err
	}
	coin, ok := resp.Data[sym]
	if !ok {
		return nil, nil
	}
	return &coin, nil
}
