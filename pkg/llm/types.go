package llm

import "time"

// CompletionRequest is a single prompt-in, text-out call.
type CompletionRequest struct {
	// Model overrides Config.Model when set.
	Model       string
	Prompt      string
	Temperature *float64
	TopP        *float64
}

// Completion is the text produced for a CompletionRequest.
type Completion struct {
	Model            string
	Text             string
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
}

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options,omitempty"`
}

type generateOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// generateResponse is the non-streaming reply of /api/generate.
type generateResponse struct {
	Model           string `json:"model"`
	CreatedAt       string `json:"created_at"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error"`
}

// Float returns a pointer to v, for the optional sampling fields.
func Float(v float64) *float64 { return &v }
