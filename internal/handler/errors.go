package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"cryptoassist-api/internal/logic"
	"cryptoassist-api/internal/types"
)

// SetErrorHandler installs the JSON error mapping used by every route.
func SetErrorHandler() {
	httpx.SetErrorHandlerCtx(errorResponse)
}

func errorResponse(_ context.Context, err error) (int, any) {
	var fetchErr *logic.FetchError
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, types.ErrorResponse{Error: fetchErr.Error()}
	case errors.Is(err, logic.ErrCoinNotFound):
		return http.StatusNotFound, types.ErrorResponse{Error: err.Error()}
	case errors.Is(err, logic.ErrInvalidRequest):
		return http.StatusBadRequest, types.ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, types.ErrorResponse{Error: "internal error"}
	}
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", logic.ErrInvalidRequest, err)
}
