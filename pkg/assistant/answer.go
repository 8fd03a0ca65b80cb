package assistant

import (
	"fmt"
	"time"
)

// Reason classifies why no answer was produced.
type Reason string

const (
	ReasonUnavailable    Reason = "unavailable"
	ReasonEmptyResponse  Reason = "empty_response"
	ReasonInvalidRequest Reason = "invalid_request"
)

// Failure describes a question that produced no text.
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("assistant: %s", f.Reason)
	}
	return fmt.Sprintf("assistant: %s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Answer holds either the model's text or a Failure, never both. Callers
// must go through Text or OrFallback to read it.
type Answer struct {
	text    string
	failure *Failure

	// Model and Duration are set for successful answers.
	Model    string
	Duration time.Duration
}

// Answered wraps generated text.
func Answered(text string) Answer {
	return Answer{text: text}
}

// Failed wraps a failure.
func Failed(reason Reason, err error) Answer {
	return Answer{failure: &Failure{Reason: reason, Err: err}}
}

// Text returns the generated text and whether there was any.
func (a Answer) Text() (string, bool) {
	if a.failure != nil || a.text == "" {
		return "", false
	}
	return a.text, true
}

// Failure returns the failure, or nil for a successful answer.
func (a Answer) Failure() *Failure {
	if a.failure == nil && a.text == "" {
		return &Failure{Reason: ReasonEmptyResponse}
	}
	return a.failure
}

// OK reports whether the answer carries text.
func (a Answer) OK() bool {
	_, ok := a.Text()
	return ok
}

// OrFallback returns the text, or msg when there is none.
func (a Answer) OrFallback(msg string) string {
	if text, ok := a.Text(); ok {
		return text
	}
	return msg
}
