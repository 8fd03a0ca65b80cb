package upstream

import (
	"errors"
	"fmt"
	"strings"
)

const maxErrorBody = 512

// Error is returned when a provider answers with a non-success HTTP status.
// Body holds the provider's error payload, truncated for logging.
type Error struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: %s: http status %d", e.Provider, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: http status %d: %s", e.Provider, e.Endpoint, e.StatusCode, body)
}

// IsStatus reports whether err wraps an *Error with the given status code.
func IsStatus(err error, code int) bool {
	var upErr *Error
	return errors.As(err, &upErr) && upErr.StatusCode == code
}

// AsError extracts the *Error wrapped by err.
func AsError(err error) (*Error, bool) {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

func truncateBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "..."
}
