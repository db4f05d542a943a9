// Package redis connects to Redis with go-redis v9 and exposes a health probe.
//
// Connect validates the redis:// or rediss:// URL, then pings with
// exponential backoff until the server answers or ConnectTimeout elapses:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 10 * time.Second,
//	})
//
// The service uses Redis only for the shared send-results rate limit, so an
// empty REDIS_URL is valid and callers fall back to in-memory limiting.
//
// Errors: ErrEmptyConnectionURL, ErrFailedToParseRedisConnString,
// ErrRedisNotReady, ErrHealthcheckFailed.
package redis
