package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error is returned when the forwarded request could not be completed.
// It never carries the forward URL, which may have been resolved from a secret.
type Error struct {
	Webhook string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to forward webhook %q: %v", e.Webhook, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure to the status returned to the caller.
func (e *Error) StatusCode() int {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
