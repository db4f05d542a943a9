// Package ratelimiter implements a token bucket limiter with pluggable state
// stores.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request consumes tokens. A request that finds too few
// tokens is denied and consumes nothing.
//
//	limiter, err := ratelimiter.NewBucket(
//		ratelimiter.NewMemoryStore(),
//		ratelimiter.PerWindow(5, time.Hour),
//	)
//
//	res, err := limiter.Allow(ctx, "send-results:"+sessionID)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process and needs its Run loop to evict idle
// keys. RedisStore keeps them in Redis and updates them atomically with a Lua
// script, so every API instance shares the same limits. Redis keys expire
// once a bucket would be full again.
package ratelimiter
