// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Check{Name: "mongodb", Fn: mongo.Healthcheck(client)},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(rdb)},
//	))
//
// Readiness runs every check concurrently and answers 503 with the names of
// the failing dependencies when any check fails.
package health
