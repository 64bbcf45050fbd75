// Package senderconfig resolves the sender display name used in the From
// header of outgoing mail.
//
// The name comes from a remote configuration service. [Cache] keeps the last
// successful response as an immutable [Snapshot] and moves between three
// states:
//
//   - [StateUnset]: nothing fetched yet, [Cache.Resolve] serves the fallback.
//   - [StateFresh]: the snapshot is younger than the TTL and is served with no I/O.
//   - [StateStale]: the TTL has passed; the next Resolve refetches, and on
//     failure keeps serving the stale snapshot.
//
// Resolve never returns an error. Fetch failures are logged and absorbed.
//
//	src := senderconfig.NewHTTPSource(cfg.ConfigAPIURL, cfg.ConfigAPIKey)
//	names := senderconfig.New(src,
//	    senderconfig.WithTTL(5*time.Minute),
//	    senderconfig.WithFallback("Acme"),
//	    senderconfig.WithSharedStore(cache.NewRedis[senderconfig.Snapshot](client, nil)),
//	)
//	from := names.Resolve(ctx)
//
// A [Refresher] can refresh the snapshot on a cron schedule.
package senderconfig
