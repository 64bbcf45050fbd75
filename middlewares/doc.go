// Package middlewares provides the HTTP middleware mailgate runs in front
// of its handlers.
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID / X-Correlation-ID or generates
// a UUID, stores it in the request context and echoes it in the response.
// Pair it with RequestIDExtractor so every log record carries request_id:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
//
// # Request logging
//
// RequestLogger writes one record per request with status and duration.
//
// # Recover
//
// Recover turns panics into a 500 HTTPError wrapping *PanicError.
//
// # Timeout
//
// Timeout bounds handler time and answers 503 with a wrapped *TimeoutError.
//
// # CORS
//
// CORS answers preflight requests and decorates cross-origin responses.
// The defaults allow the X-API-Key header.
//
// # API key
//
// APIKey guards a route group. The key is read from X-API-Key, a Bearer
// token, or the apiKey query parameter, in that order:
//
//	r.Group(func(r internal.Router) {
//	    r.Use(middlewares.APIKey(apikey.NewGate(keys...)))
//	    r.POST("/send", h.send)
//	})
//
// # Recommended order
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(),     // ID first so every later log has it
//	    middlewares.RequestLogger(),
//	    middlewares.Recover(),
//	    middlewares.CORS(),          // preflight before auth
//	    middlewares.Timeout(2*time.Minute),
//	)
package middlewares
