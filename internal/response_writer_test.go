package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusUnauthorized)

	require.Equal(t, http.StatusUnauthorized, rw.Status())
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.True(t, rw.Written())
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusBadRequest)
	rw.WriteHeader(http.StatusInternalServerError)

	require.Equal(t, http.StatusBadRequest, rw.Status())
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResponseWriter_Write_ImplicitOK(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = rw.Write([]byte(" world"))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hello world", w.Body.String())
	require.Equal(t, int64(11), rw.Size())
	require.True(t, rw.Written())
}

func TestResponseWriter_Hooks(t *testing.T) {
	t.Parallel()

	t.Run("run once before the header in order", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := NewResponseWriter(w)

		var calls []string
		rw.OnBeforeWrite(func() {
			calls = append(calls, "first")
			rw.Header().Set("X-Request-ID", "req-1")
		})
		rw.OnBeforeWrite(func() { calls = append(calls, "second") })

		rw.WriteHeader(http.StatusCreated)
		_, _ = rw.Write([]byte("body"))

		require.Equal(t, []string{"first", "second"}, calls)
		require.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("write triggers hooks", func(t *testing.T) {
		t.Parallel()

		rw := NewResponseWriter(httptest.NewRecorder())
		called := 0
		rw.OnBeforeWrite(func() { called++ })

		_, _ = rw.Write([]byte("a"))
		_, _ = rw.Write([]byte("b"))

		require.Equal(t, 1, called)
	})
}

func TestNewResponseWriter_Reuse(t *testing.T) {
	t.Parallel()

	outer := NewResponseWriter(httptest.NewRecorder())
	inner := NewResponseWriter(outer)

	require.Same(t, outer, inner)

	inner.WriteHeader(http.StatusAccepted)
	require.True(t, outer.Written())
	require.Equal(t, http.StatusAccepted, outer.Status())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	require.Equal(t, http.ResponseWriter(w), rw.Unwrap())

	_, _, err := rw.Hijack()
	require.ErrorIs(t, err, http.ErrNotSupported)
}
