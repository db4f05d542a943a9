package health

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/core/response"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness answers "READY" when every check passes and 503 otherwise.
// Checks with a nil Fn are skipped, so optional dependencies can be listed
// unconditionally.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var (
			mu     sync.Mutex
			failed = map[string]any{}
		)

		var g errgroup.Group
		for _, c := range checks {
			if c.Fn == nil {
				continue
			}
			g.Go(func() error {
				if err := c.Fn(ctx); err != nil {
					log.ErrorContext(ctx, "readiness check failed",
						logger.Component("health"),
						slog.String("check", c.Name),
						logger.Error(err),
					)
					mu.Lock()
					failed[c.Name] = err.Error()
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		if len(failed) > 0 {
			return response.Error(response.ErrServiceUnavailable.WithDetails(failed))
		}
		return response.String("READY")
	}
}
