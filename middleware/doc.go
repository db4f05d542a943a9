// Package middleware holds the HTTP middleware used by the API router.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.Logging[*router.Context](log),
//			middleware.CORS[*router.Context](middleware.CORSConfig{}),
//		),
//	)
//
//	r.With(middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
//		Limiter:      limiter,
//		KeyExtractor: middleware.PathParamKey("send-results:", "id"),
//	})).Put("/session/{id}/send-results", h.SendResults)
//
// Every middleware is generic over handler.Context and decorates the
// handler.Response it returns, so headers are set right before the response
// is written.
package middleware
