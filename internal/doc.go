// Package internal is the HTTP application kernel of mailgate.
//
// It wraps chi with a small handler model: handlers receive a Context and
// return an error, middleware wraps HandlerFunc, and a single ErrorHandler
// turns returned errors into JSON responses.
//
// # Core Types
//
//   - App: routing, middleware, error handling and health endpoints
//   - Context: request/response access, JSON binding with validation, logging
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HTTPError: an error carrying the status and client-facing message
//   - Extractor: ordered lookup of a value from headers, query or params
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to blocking
// calls:
//
//	func (h *EmailHandler) send(c internal.Context) error {
//	    id, err := h.dispatcher.Send(c, msg)
//	    ...
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewEmail(dispatcher, gate)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("redis", check)),
//	)
//
//	err := app.Run(":3000",
//	    internal.StartupHook(refresher.Start),
//	    internal.ShutdownHook(refresher.Stop),
//	)
//
// # Error Handling
//
// Return an HTTPError to control the status and message:
//
//	return internal.ErrBadRequest("Recipients array is required for bulk email")
//
// Any other error becomes a 500 with a generic message; the cause is logged.
// Errors returned after the response was written are ignored.
//
// # Lifecycle
//
// Run executes startup hooks, serves until SIGINT/SIGTERM (or until the
// context passed with WithContext is cancelled), drains in-flight requests
// and then runs shutdown hooks in registration order.
package internal
