// Package mailgate is a small HTTP service that sends transactional email
// on behalf of other applications.
//
// Callers authenticate with a shared API key and post either a single
// message (POST /send) or one message fanned out to many recipients
// (POST /send-bulk). The sender display name is looked up from a remote
// configuration endpoint and cached with a fail-open policy, so an outage
// of that endpoint never blocks delivery.
//
// # Application
//
// The root package re-exports the HTTP kernel. An application is assembled
// from handlers and middleware:
//
//	app := mailgate.New(
//	    mailgate.WithLogger(log),
//	    mailgate.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.RequestLogger(),
//	        middlewares.Recover(),
//	    ),
//	    mailgate.WithHandlers(handlers.NewEmail(dispatcher, gate, status)),
//	    mailgate.WithHealthChecks(
//	        mailgate.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    ),
//	)
//
// # Handlers
//
// Handlers implement [Handler] and declare their routes:
//
//	func (h *Email) Routes(r mailgate.Router) {
//	    r.Group(func(r mailgate.Router) {
//	        r.Use(middlewares.APIKey(h.auth))
//	        r.POST("/send", h.send)
//	    })
//	}
//
// Returning an error from a handler hands it to the error handler, which
// renders [HTTPError] values with their status and anything else as a 500.
//
// # Shutdown
//
// Run blocks until SIGINT/SIGTERM or until the context passed with
// [WithContext] is cancelled, then drains in-flight requests and runs the
// shutdown hooks:
//
//	err := app.Run(":3000",
//	    mailgate.StartupHook(refresher.Start),
//	    mailgate.ShutdownHook(refresher.Stop),
//	)
package mailgate
