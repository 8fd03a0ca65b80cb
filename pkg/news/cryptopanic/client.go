package cryptopanic

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoassist-api/pkg/confkit"
	"cryptoassist-api/pkg/news"
	"cryptoassist-api/pkg/upstream"
)

const (
	// ProviderType is the registry key for this provider.
	ProviderType = "cryptopanic"
	// APIKeyEnv holds the provider credential.
	APIKeyEnv = "CRYPTO_PANIC_API_KEY"

	defaultBaseURL = "https://cryptopanic.com/api/v1"
	postsPath      = "posts/"
)

// Client reads public posts from the CryptoPanic API.
type Client struct {
	api           *upstream.Client
	apiKey        string
	defaultFilter string
}

var _ news.Provider = (*Client)(nil)

type clientOptions struct {
	baseURL    string
	apiKey     string
	filter     string
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

// WithAPIKey sets the auth token instead of reading CRYPTO_PANIC_API_KEY.
func WithAPIKey(key string) Option {
	return func(o *clientOptions) { o.apiKey = key }
}

// WithDefaultFilter replaces news.DefaultFilter for calls with an empty filter.
func WithDefaultFilter(filter string) Option {
	return func(o *clientOptions) {
		if strings.TrimSpace(filter) != "" {
			o.filter = filter
		}
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithTimeout bounds each request. Zero keeps transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// NewClient constructs a client. It fails with *confkit.CredentialError when
// no auth token is available.
func NewClient(opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: defaultBaseURL, filter: news.DefaultFilter}
	for _, opt := range opts {
		opt(&o)
	}
	key, err := confkit.Credential(ProviderType, o.apiKey, APIKeyEnv)
	if err != nil {
		return nil, err
	}

	apiOpts := []upstream.Option{upstream.WithTimeout(o.timeout)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, upstream.WithHTTPClient(o.httpClient))
	}
	return &Client{
		api:           upstream.NewClient(ProviderType, o.baseURL, apiOpts...),
		apiKey:        key,
		defaultFilter: o.filter,
	}, nil
}

// GetNews fetches public posts. coin restricts the result to one currency;
// filter is passed through verbatim, defaulting to the configured filter.
func (c *Client) GetNews(ctx context.Context, coin, filter string) ([]news.RawNewsItem, error) {
	if filter == "" {
		filter = c.defaultFilter
	}
	query := url.Values{}
	query.Set("auth_token", c.apiKey)
	query.Set("public", "true")
	query.Set("filter", filter)
	if coin = strings.TrimSpace(coin); coin != "" {
		query.Set("currencies", strings.ToUpper(coin))
	}

	var resp postsResponse
	if err := c.api.GetJSON(ctx, postsPath, query, &resp); err != nil {
		return nil, redactToken(err, c.apiKey)
	}
	if resp.Results == nil {
		return []news.RawNewsItem{}, nil
	}
	return resp.Results, nil
}

type postsResponse struct {
	Count   int                `json:"count"`
	Next    *string            `json:"next"`
	Results []news.RawNewsItem `json:"results"`
}

// redactToken strips the auth token from transport errors, which embed the
// request URL.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	if _, ok := upstream.AsError(err); ok {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "REDACTED"), cause: err}
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.cause }
