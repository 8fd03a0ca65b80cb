package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptoassist-api/pkg/upstream"
)

var (
	ErrCoinNotFound   = errors.New("coin not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// FetchError reports a provider call that failed. Only What reaches the
// client; the cause is logged.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string { return "failed to fetch " + e.What }

func (e *FetchError) Unwrap() error { return e.Err }

func fetchFailed(ctx context.Context, what string, err error) error {
	if upErr, ok := upstream.AsError(err); ok {
		logx.WithContext(ctx).Errorf("fetch %s: provider=%s endpoint=%s status=%d: %s",
			what, upErr.Provider, upErr.Endpoint, upErr.StatusCode, upErr.Body)
	} else {
		logx.WithContext(ctx).Errorf("fetch %s: %v", what, err)
	}
	return &FetchError{What: what, Err: err}
}
