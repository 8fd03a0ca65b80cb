package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	generatePath = "/api/generate"
	chatPrefix   = "/v1"
	// The local runtime ignores the key but the SDK always sends one.
	placeholderAPIKey = "ollama"
	maxErrorBody      = 512
)

// ErrEmptyResponse is returned when the runtime answered with no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Completer produces text for a prompt.
type Completer interface {
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)
}

// HTTPError reports a non-2xx reply from the completion runtime.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("llm: http %d", e.StatusCode)
	}
	return fmt.Sprintf("llm: http %d: %s", e.StatusCode, e.Body)
}

// Client talks to a local Ollama-style runtime, either through the native
// generate endpoint or through its OpenAI-compatible chat endpoint.
type Client struct {
	config       *Config
	openaiClient *openai.Client
	logger       Logger
	httpClient   *http.Client
}

var _ Completer = (*Client)(nil)

// ClientOption configures optional client behaviour.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger       Logger
	httpClient   *http.Client
	openaiClient *openai.Client
}

// WithLogger injects a custom logger implementation.
func WithLogger(logger Logger) ClientOption {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// WithOpenAIClient injects a pre-configured OpenAI client used by chat mode.
func WithOpenAIClient(client *openai.Client) ClientOption {
	return func(opts *clientOptions) {
		opts.openaiClient = client
	}
}

// NewClient constructs a new client using the provided configuration.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("llm: config cannot be nil")
	}
	clientCfg := cfg.Clone()
	if err := clientCfg.Validate(); err != nil {
		return nil, err
	}

	optState := clientOptions{}
	for _, opt := range opts {
		opt(&optState)
	}

	logger := optState.logger
	if logger == nil {
		logger = NewLogger(clientCfg.LogLevel)
	}

	httpClient := optState.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientCfg.Timeout}
	}

	oaClient := optState.openaiClient
	if oaClient == nil {
		apiKey := clientCfg.APIKey
		if apiKey == "" {
			apiKey = placeholderAPIKey
		}
		oaOpts := []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithBaseURL(clientCfg.BaseURL + chatPrefix),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		}
		if clientCfg.Timeout > 0 {
			oaOpts = append(oaOpts, option.WithRequestTimeout(clientCfg.Timeout))
		}
		clientVal := openai.NewClient(oaOpts...)
		oaClient = &clientVal
	}

	return &Client{
		config:       clientCfg,
		openaiClient: oaClient,
		logger:       logger,
		httpClient:   httpClient,
	}, nil
}

// Complete sends the prompt using the configured mode.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	if req == nil {
		return nil, errors.New("llm: request cannot be nil")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("llm: prompt cannot be empty")
	}
	if c.config.Mode == ModeChat {
		return c.Chat(ctx, req)
	}
	return c.Generate(ctx, req)
}

// Generate posts the prompt to the native generate endpoint with streaming disabled.
func (c *Client) Generate(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	modelID := c.modelFor(req)
	body, err := json.Marshal(generateRequest{
		Model:  modelID,
		Prompt: req.Prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: encode generate request: %w", err)
	}

	c.logger.Info(ctx, "llm generate request", Fields{
		"model":      modelID,
		"prompt_len": len(req.Prompt),
	})

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error(ctx, fmt.Errorf("generate failed: %w", err), Fields{"model": modelID})
		return nil, fmt.Errorf("llm: generate: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read generate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: truncate(string(payload))}
		c.logger.Error(ctx, httpErr, Fields{"model": modelID})
		return nil, httpErr
	}

	var parsed generateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("llm: decode generate response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("llm: generate: %s", parsed.Error)
	}

	text := strings.TrimSpace(parsed.Response)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	out := &Completion{
		Model:            firstNonEmpty(parsed.Model, modelID),
		Text:             text,
		PromptTokens:     parsed.PromptEvalCount,
		CompletionTokens: parsed.EvalCount,
		Duration:         time.Since(start),
	}
	c.logCompletion(ctx, out)
	return out, nil
}

// Chat sends the prompt as a single user message via the OpenAI-compatible endpoint.
func (c *Client) Chat(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	modelID := c.modelFor(req)
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(modelID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.TopP != nil {
		params.TopP = openai.Float(*req.TopP)
	}

	c.logger.Info(ctx, "llm chat request", Fields{
		"model":      modelID,
		"prompt_len": len(req.Prompt),
	})

	start := time.Now()
	resp, err := c.openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			httpErr := &HTTPError{StatusCode: apiErr.StatusCode}
			c.logger.Error(ctx, httpErr, Fields{"model": modelID})
			return nil, httpErr
		}
		c.logger.Error(ctx, fmt.Errorf("chat completion failed: %w", err), Fields{"model": modelID})
		return nil, fmt.Errorf("llm: chat: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}

	out := &Completion{
		Model:            firstNonEmpty(resp.Model, modelID),
		Text:             text,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		Duration:         time.Since(start),
	}
	c.logCompletion(ctx, out)
	return out, nil
}

// GetConfig returns an immutable copy of the client configuration.
func (c *Client) GetConfig() *Config {
	return c.config.Clone()
}

// Close releases resources associated with the client.
func (c *Client) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

func (c *Client) modelFor(req *CompletionRequest) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	return c.config.Model
}

func (c *Client) logCompletion(ctx context.Context, out *Completion) {
	c.logger.Info(ctx, "llm completion success", Fields{
		"model":             out.Model,
		"duration_ms":       out.Duration.Milliseconds(),
		"prompt_tokens":     out.PromptTokens,
		"completion_tokens": out.CompletionTokens,
	})
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
