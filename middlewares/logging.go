package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
)

// RequestLogger returns middleware that logs one record per request after
// the handler returns: method, path, status, response size and duration.
// 5xx responses log at error level, 4xx at warn, the rest at info.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = http.StatusInternalServerError
				if he := internal.AsHTTPError(err); he != nil {
					status = he.Code
				}
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			c.Logger().Log(c.Context(), level, "http request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
