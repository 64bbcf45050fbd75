package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that bounds handler execution time.
// On deadline it returns a 503 HTTPError wrapping a *TimeoutError.
// Handlers that want to stop early read the deadline-bound context with
// GetTimeoutContext.
//
// Note: the handler goroutine keeps running after the deadline.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", timeout.String())
					return internal.NewHTTPError(http.StatusServiceUnavailable, "Request timeout",
						internal.WithError(&TimeoutError{Duration: timeout}))
				}
				return ctx.Err()
			}
		}
	}
}

// timeoutContextKey is used to store the timeout context.
type timeoutContextKey struct{}

// GetTimeoutContext retrieves the deadline-bound context if available.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
