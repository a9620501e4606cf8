package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"

	"github.com/sony/gobreaker/v2"

	"chuipos/internal/core/apperror"
)

// errorResponse is the backend error body.
type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// statusError maps a non-2xx, non-auth response. The backend message is
// passed through verbatim when the body can be parsed.
func statusError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || strings.TrimSpace(er.Message) == "" {
		return apperror.NewUnexpectedStatus(status)
	}
	return apperror.NewServer(status, er.Message)
}

// transportError maps a failure to obtain any response.
func transportError(ctx context.Context, err error) error {
	switch {
	case isCanceled(err) && ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.NewTimeout(err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperror.NewTransport(err).WithDetail("breaker", "open")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperror.NewTimeout(err)
	}
	return apperror.NewTransport(err)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
