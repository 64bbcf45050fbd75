package middlewares_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/pkg/logger"
)

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testContext is a minimal internal.Context for exercising middleware in isolation.
type testContext struct {
	rw      *internal.ResponseWriter
	request *http.Request
	logs    *syncBuffer
	log     *slog.Logger
	mu      sync.Mutex
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	logs := &syncBuffer{}
	return &testContext{
		rw:      internal.NewResponseWriter(w),
		request: r,
		logs:    logs,
		log:     logger.NewWithWriter(logs, slog.LevelDebug),
	}
}

func (c *testContext) Request() *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request
}

func (c *testContext) Response() http.ResponseWriter             { return c.rw }
func (c *testContext) ResponseWriter() *internal.ResponseWriter  { return c.rw }
func (c *testContext) Context() context.Context                  { return c.Request().Context() }
func (c *testContext) Deadline() (time.Time, bool)               { return c.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                     { return c.Context().Done() }
func (c *testContext) Err() error                                { return c.Context().Err() }
func (c *testContext) Value(key any) any                         { return c.Context().Value(key) }
func (c *testContext) Param(string) string                       { return "" }
func (c *testContext) Query(name string) string                  { return c.Request().URL.Query().Get(name) }
func (c *testContext) Header(name string) string                 { return c.Request().Header.Get(name) }
func (c *testContext) SetHeader(name, value string)              { c.rw.Header().Set(name, value) }
func (c *testContext) Written() bool                             { return c.rw.Written() }
func (c *testContext) Logger() *slog.Logger                      { return c.log }

func (c *testContext) BindJSON(any) (internal.ValidationErrors, error) {
	return nil, nil
}

func (c *testContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *testContext) RealIP() string {
	host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
	if err != nil {
		return c.Request().RemoteAddr
	}
	return host
}

func (c *testContext) JSON(code int, v any) error {
	c.rw.Header().Set("Content-Type", "application/json")
	c.rw.WriteHeader(code)
	return json.NewEncoder(c.rw).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.rw.WriteHeader(code)
	_, err := c.rw.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) LogDebug(msg string, attrs ...any) { c.log.DebugContext(c.Context(), msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.log.InfoContext(c.Context(), msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.log.WarnContext(c.Context(), msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.log.ErrorContext(c.Context(), msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	return c.Context().Value(key)
}

var _ internal.Context = (*testContext)(nil)
