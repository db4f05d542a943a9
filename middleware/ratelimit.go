package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/pkg/ratelimiter"
)

type RateLimitConfig struct {
	Limiter ratelimiter.RateLimiter
	// KeyExtractor picks the bucket key (default: remote address).
	// An empty key skips limiting.
	KeyExtractor func(ctx handler.Context) string
	// Logger receives store failures (default: slog.Default()).
	Logger *slog.Logger
	// FailOpen lets requests through when the store errors.
	FailOpen bool
}

// RateLimit rejects requests over the limit with 429 and sets the
// X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset headers on
// every limited response. Panics without a limiter.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string { return ctx.Request().RemoteAddr }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			key := cfg.KeyExtractor(ctx)
			if key == "" {
				return next(ctx)
			}

			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "rate limit check failed",
					logger.Component("ratelimit"),
					logger.Error(err),
				)
				if cfg.FailOpen {
					return next(ctx)
				}
				return response.Error(response.ErrServiceUnavailable.WithMessage("rate limiter unavailable"))
			}

			if !result.Allowed() {
				httpErr := response.ErrTooManyRequests.WithDetails(map[string]any{
					"retry_after": int(result.RetryAfter().Seconds()),
				})
				return withRateLimitHeaders(response.Error(httpErr), result)
			}

			return withRateLimitHeaders(next(ctx), result)
		}
	}
}

// PathParamKey builds a KeyExtractor from a route parameter, e.g. the session id.
func PathParamKey(prefix, param string) func(ctx handler.Context) string {
	return func(ctx handler.Context) string {
		v := ctx.Param(param)
		if v == "" {
			return ""
		}
		return prefix + v
	}
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if !result.Allowed() {
			h.Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())+1))
		}
		return resp(w, r)
	}
}
