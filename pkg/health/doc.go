// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis":         redis.Healthcheck(client),
//	    "sender_config": senderCache.Healthcheck(),
//	}))
//
// Readiness runs every check in parallel and returns 503 with the failing
// check names when any of them errors.
package health
