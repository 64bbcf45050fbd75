// Package cache provides the shared snapshot tier used by mailgate replicas.
//
// [Cache] has two implementations: [Memory] for a single process and tests,
// and [Redis] for deployments where several instances should reuse one fetched
// value instead of each calling the upstream service.
//
//	client := redis.MustOpen(ctx, cfg.RedisURL)
//	store := cache.NewRedis[senderconfig.Snapshot](client, nil,
//	    cache.WithPrefix("mailgate"),
//	    cache.WithDefaultTTL(5*time.Minute),
//	)
//
// A zero TTL in Set uses the default TTL, a negative TTL never expires.
package cache
