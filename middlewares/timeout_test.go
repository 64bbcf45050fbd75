package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("passes through when handler completes in time", func(t *testing.T) {
		t.Parallel()
		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			return nil
		})(c)
		require.NoError(t, err)
	})

	t.Run("returns 503 wrapping TimeoutError", func(t *testing.T) {
		t.Parallel()
		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Timeout(10 * time.Millisecond)(func(c internal.Context) error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})(c)
		require.Error(t, err)

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)

		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		assert.Equal(t, 10*time.Millisecond, te.Duration)
		assert.Equal(t, "request timeout after 10ms", te.Error())
	})

	t.Run("timeout context carries deadline", func(t *testing.T) {
		t.Parallel()
		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		var hasDeadline bool
		err := middlewares.Timeout(0)(func(c internal.Context) error {
			_, hasDeadline = middlewares.GetTimeoutContext(c).Deadline()
			return nil
		})(c)
		require.NoError(t, err)
		assert.True(t, hasDeadline)
	})

	t.Run("without middleware returns request context", func(t *testing.T) {
		t.Parallel()
		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, c.Context(), middlewares.GetTimeoutContext(c))
	})
}

func TestTimeoutErrorHelpers(t *testing.T) {
	t.Parallel()

	require.False(t, middlewares.IsTimeoutError(http.ErrNoCookie))
	_, ok := middlewares.AsTimeoutError(http.ErrNoCookie)
	require.False(t, ok)
	require.True(t, middlewares.IsTimeoutError(&middlewares.TimeoutError{Duration: time.Second}))
}
