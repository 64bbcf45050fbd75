package middlewares

import (
	"errors"
	"fmt"
	"time"
)

// PanicError is the cause attached to the 500 produced by Recover.
type PanicError struct {
	Value any
	// Path is the request path that panicked.
	Path string
	// Stack is nil when stack capture is disabled.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError is the cause attached to the 503 produced by Timeout.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return "request timeout after " + e.Duration.String()
}

func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError finds a *PanicError in err's chain, including inside an HTTPError.
func AsPanicError(err error) (*PanicError, bool) {
	return find[*PanicError](err)
}

// AsTimeoutError finds a *TimeoutError in err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	return find[*TimeoutError](err)
}

func find[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
