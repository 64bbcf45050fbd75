// Package redis opens the go-redis client backing the shared sender-config
// snapshot and exposes it to the application lifecycle.
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	app := internal.New(
//		internal.WithHealthChecks(health.Checks{"redis": redis.Healthcheck(client)}),
//		internal.WithShutdownHook(redis.Shutdown(client)),
//	)
package redis
