package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues GET requests against a provider's JSON REST API.
// It never retries; failures are returned to the caller as-is.
type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. It also applies to a client
// injected with WithHTTPClient, whatever the option order. Zero keeps the
// client's own timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// NewClient constructs a client rooted at baseURL. provider names the
// upstream in errors and metrics.
func NewClient(provider, baseURL string, opts ...Option) *Client {
	c := &Client{
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	c.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Provider returns the provider name used in errors.
func (c *Client) Provider() string { return c.provider }

// GetJSON requests baseURL+path with query and decodes a 2xx body into
// result. Non-2xx responses yield *Error carrying the provider's body.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result any) error {
	endpoint := strings.TrimLeft(path, "/")
	target := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.provider, err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(c.provider, endpoint, 0, start)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %s: %w", c.provider, endpoint, err)
	}
	defer resp.Body.Close()
	observe(c.provider, endpoint, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Provider:   c.provider,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}
