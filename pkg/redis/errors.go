package redis

import "errors"

var (
	ErrMissingURL = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrUnreachable is returned after every connection attempt failed.
	ErrUnreachable       = errors.New("redis: server unreachable")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
