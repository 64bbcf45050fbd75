package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/internal"
)

type sendRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
}

type testHandler struct{}

func (h *testHandler) Routes(r internal.Router) {
	r.GET("/ping", func(c internal.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	r.POST("/bind", func(c internal.Context) error {
		var req sendRequest
		ve, err := c.BindJSON(&req)
		if err != nil {
			return internal.ErrBadRequest("Invalid JSON payload", internal.WithError(err))
		}
		if ve != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"errors": ve})
		}
		return c.JSON(http.StatusOK, req)
	})
	r.GET("/http-error", func(c internal.Context) error {
		return c.Error(http.StatusUnauthorized, "API key required")
	})
	r.GET("/plain-error", func(c internal.Context) error {
		return errors.New("boom")
	})
	r.GET("/written", func(c internal.Context) error {
		_ = c.NoContent(http.StatusAccepted)
		return errors.New("ignored")
	})
	r.Route("/api", func(r internal.Router) {
		r.Use(headerMiddleware("X-Group", "api"))
		r.GET("/item/{id}", func(c internal.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
		}, headerMiddleware("X-Route", "item"))
	})
}

func headerMiddleware(name, value string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader(name, value)
			return next(c)
		}
	}
}

func serve(app *internal.App, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(&testHandler{}),
		internal.WithMiddleware(headerMiddleware("X-Global", "yes")),
	)

	t.Run("plain route", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/ping", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "pong", w.Body.String())
		require.Equal(t, "yes", w.Header().Get("X-Global"))
	})

	t.Run("group and route middleware", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/api/item/42", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "api", w.Header().Get("X-Group"))
		require.Equal(t, "item", w.Header().Get("X-Route"))
		require.Equal(t, "42", decode(t, w)["id"])
	})

	t.Run("not found is json", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/missing", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Route not found", body["message"])
	})

	t.Run("method not allowed is json", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodDelete, "/ping", "")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "Method not allowed", decode(t, w)["message"])
	})
}

func TestApp_ErrorHandling(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(&testHandler{}))

	t.Run("http error keeps status and message", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/http-error", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "API key required", body["message"])
	})

	t.Run("plain error becomes 500 without leaking", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/plain-error", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", decode(t, w)["message"])
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("error after write is ignored", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodGet, "/written", "")
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Empty(t, w.Body.String())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		custom := internal.New(
			internal.WithHandlers(&testHandler{}),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				return c.String(http.StatusTeapot, "custom: "+err.Error())
			}),
		)
		w := serve(custom, http.MethodGet, "/plain-error", "")
		require.Equal(t, http.StatusTeapot, w.Code)
		require.Equal(t, "custom: boom", w.Body.String())
	})
}

func TestContext_BindJSON(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(&testHandler{}))

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodPost, "/bind", `{"to":"a@example.com","subject":"Hi"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a@example.com", decode(t, w)["to"])
	})

	t.Run("validation errors", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodPost, "/bind", `{"to":"nope"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Errors []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Errors, 2)
		assert.Equal(t, "to", body.Errors[0].Field)
		assert.Equal(t, "subject", body.Errors[1].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		w := serve(app, http.MethodPost, "/bind", `{"to":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid JSON payload", decode(t, w)["message"])
	})

	t.Run("body over the limit", func(t *testing.T) {
		t.Parallel()
		small := internal.New(internal.WithHandlers(&testHandler{}), internal.WithMaxBodySize(16))
		w := serve(small, http.MethodPost, "/bind", `{"to":"a@example.com","subject":"Hi"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("always_ok", func(ctx context.Context) error { return nil }),
	))

	w := serve(app, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(app, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	failing := internal.New(internal.WithHealthChecks(
		internal.WithReadinessPath("/ready"),
		internal.WithReadinessCheck("redis", func(ctx context.Context) error { return errors.New("down") }),
	))
	w = serve(failing, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContext_RealIP(t *testing.T) {
	t.Parallel()

	var got string
	h := &paramCaptureHandler{fn: func(c internal.Context) { got = c.RealIP() }}

	req := httptest.NewRequest(http.MethodGet, "/1", nil)
	req.RemoteAddr = "10.0.0.5:41234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	internal.New(internal.WithHandlers(h)).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.5", got)

	req = httptest.NewRequest(http.MethodGet, "/1", nil)
	req.RemoteAddr = "10.0.0.5:41234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	internal.New(internal.WithHandlers(h), internal.WithTrustProxy()).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", got)
}
