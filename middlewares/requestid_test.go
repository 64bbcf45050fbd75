package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, req *http.Request, opts ...middlewares.RequestIDOption) (*httptest.ResponseRecorder, string) {
		t.Helper()
		rec := httptest.NewRecorder()
		c := newTestContext(rec, req)

		var captured string
		err := middlewares.RequestID(opts...)(func(c internal.Context) error {
			captured = middlewares.GetRequestID(c)
			return nil
		})(c)
		require.NoError(t, err)
		return rec, captured
	}

	t.Run("generates uuid when not present", func(t *testing.T) {
		t.Parallel()
		rec, id := run(t, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-123")

		rec, id := run(t, req)
		require.Equal(t, "corr-123", id)
		require.Equal(t, "corr-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("replaces oversized upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 500))

		_, id := run(t, req)
		require.Len(t, id, 36)
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()
		rec, id := run(t, httptest.NewRequest(http.MethodGet, "/", nil),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)
		require.Equal(t, "fixed", id)
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	c := newTestContext(httptest.NewRecorder(), req)

	err := middlewares.RequestID()(func(c internal.Context) error { return nil })(c)
	require.NoError(t, err)

	attr, ok := middlewares.RequestIDExtractor()(c.Context())
	require.True(t, ok)
	require.Equal(t, "request_id", attr.Key)
	require.Equal(t, "req-42", attr.Value.String())

	_, ok = middlewares.RequestIDExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, ok)
}
