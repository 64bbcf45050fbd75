package internal

import (
	"errors"
	"net/http"
)

// ErrMalformedBody is returned by BindJSON when the request body cannot be decoded.
var ErrMalformedBody = errors.New("malformed request body")

// HTTPError is an error that knows how it should be rendered to the client.
// The default error handler writes it as {"success": false, "message": ...}.
type HTTPError struct {
	// Err is the underlying error. It is logged, never shown to the client.
	Err error

	// Message is the client-facing message.
	Message string

	// Detail is an optional client-facing description, rendered as "error".
	Detail string

	// ErrorCode is an optional machine-readable code.
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for the statuses the API produces.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrRequestTimeout(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusRequestTimeout, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message, opts...)
}

// IsHTTPError reports whether err (or anything it wraps) is an HTTPError.
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Success   bool   `json:"success"`
}

// DefaultErrorHandler renders HTTPErrors with their own status and message.
// Any other error is logged and rendered as a generic 500.
func DefaultErrorHandler(c Context, err error) error {
	httpErr := AsHTTPError(err)
	if httpErr == nil {
		c.LogError("unhandled error", "error", err)
		httpErr = ErrInternal("Internal Server Error", WithError(err))
	} else if httpErr.Code >= http.StatusInternalServerError {
		c.LogError(httpErr.Message, "status", httpErr.Code, "error", httpErr.Err)
	}

	return c.JSON(httpErr.Code, errorBody{
		Message:   httpErr.Message,
		Error:     httpErr.Detail,
		Code:      httpErr.ErrorCode,
		RequestID: httpErr.RequestID,
	})
}
