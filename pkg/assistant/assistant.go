package assistant

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/pkg/llm"
	"cryptoassist-api/pkg/prompt"
)

//go:embed assistant.tmpl
var defaultTemplate []byte

const templateName = "assistant.tmpl"

// PromptInputs is the data rendered into the question template.
type PromptInputs struct {
	Context  string
	Question string
	Format   string
}

// Assistant answers free-form questions grounded on an assembled context.
type Assistant struct {
	cfg       *Config
	completer llm.Completer
	tpl       *prompt.Template
}

// New builds an Assistant. A nil cfg uses DefaultConfig. The prompt comes
// from cfg.PromptTemplate when set, else the built-in template.
func New(completer llm.Completer, cfg *Config) (*Assistant, error) {
	if completer == nil {
		return nil, errors.New("assistant: completer is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tpl, err := prompt.Load(cfg.PromptTemplate, templateName, defaultTemplate, nil)
	if err != nil {
		return nil, err
	}
	return &Assistant{cfg: cfg, completer: completer, tpl: tpl}, nil
}

// Config returns the assistant configuration.
func (a *Assistant) Config() *Config { return a.cfg }

// PromptName is the template name, the file base name for an override.
func (a *Assistant) PromptName() string { return a.tpl.Name() }

// PromptDigest identifies the prompt template in use.
func (a *Assistant) PromptDigest() string { return a.tpl.Digest() }

// BuildPrompt renders the full prompt. An empty format uses the configured default.
func (a *Assistant) BuildPrompt(question, contextBlock, format string) (string, error) {
	if strings.TrimSpace(format) == "" {
		format = a.cfg.Format
	}
	return a.tpl.Render(PromptInputs{
		Context:  contextBlock,
		Question: strings.TrimSpace(question),
		Format:   format,
	})
}

// Ask sends one question to the completion service. It never returns an
// error: every failure is reported through the Answer.
func (a *Assistant) Ask(ctx context.Context, question, contextBlock, format string) Answer {
	if strings.TrimSpace(question) == "" {
		return Failed(ReasonInvalidRequest, errors.New("question is empty"))
	}
	full, err := a.BuildPrompt(question, contextBlock, format)
	if err != nil {
		logx.WithContext(ctx).Errorf("assistant: render prompt: %v", err)
		return Failed(ReasonInvalidRequest, err)
	}

	resp, err := a.completer.Complete(ctx, &llm.CompletionRequest{
		Model:       a.cfg.Model,
		Prompt:      full,
		Temperature: llm.Float(a.cfg.Temperature),
		TopP:        llm.Float(a.cfg.TopP),
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("Error generating AI response: %v", err)
		if errors.Is(err, llm.ErrEmptyResponse) {
			return Failed(ReasonEmptyResponse, err)
		}
		return Failed(ReasonUnavailable, err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return Failed(ReasonEmptyResponse, llm.ErrEmptyResponse)
	}

	answer := Answered(resp.Text)
	answer.Model = resp.Model
	answer.Duration = resp.Duration
	return answer
}
