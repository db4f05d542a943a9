package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/health"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
	"github.com/Arokeji/Nailted-Back/core/server"
	"github.com/Arokeji/Nailted-Back/integration/database/mongo"
	"github.com/Arokeji/Nailted-Back/integration/database/redis"
	"github.com/Arokeji/Nailted-Back/integration/email/postmark"
	"github.com/Arokeji/Nailted-Back/internal/api"
	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
	"github.com/Arokeji/Nailted-Back/middleware"
	"github.com/Arokeji/Nailted-Back/pkg/ratelimiter"
)

// App owns the process wide dependencies of the API.
type App struct {
	config Config
	logger *slog.Logger
	mongo  *mongodriver.Client
	redis  *goredis.Client
	memory *ratelimiter.MemoryStore
	router router.Router[*router.Context]
	server *server.Server
}

type Option func(*App) error

func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

func WithServer(srv *server.Server) Option {
	return func(a *App) error {
		if srv == nil {
			return errors.New("server cannot be nil")
		}
		a.server = srv
		return nil
	}
}

// New connects to MongoDB (and Redis when configured) and builds the router.
// Close must be called when New succeeds.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.logger == nil {
		a.logger = NewLogger(cfg)
	}

	hasher, err := session.NewEmailHasher(cfg.EmailIndexKey, cfg.EmailHashCost)
	if err != nil {
		return nil, err
	}

	sender, err := newSender(cfg, a.logger)
	if err != nil {
		return nil, err
	}

	a.mongo, err = mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	db := a.mongo.Database(cfg.Mongo.Database)

	limiterStore, err := a.limiterStore(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	limiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.PerWindow(cfg.SendResultsLimit, cfg.SendResultsWindow))
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	quizzes := quiz.NewStore(db)
	sessions := session.NewStore(db, quizzes, hasher)
	for _, ensure := range []func(context.Context) error{quizzes.EnsureIndexes, sessions.EnsureIndexes} {
		if err := ensure(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	h := api.New(sessions, quizzes, sender,
		api.WithLogger(a.logger),
		api.WithSendResultsLimiter(limiter),
		api.WithAppName("Nailted"),
	)
	a.router = a.newRouter(h)

	if a.server == nil {
		a.server, err = server.NewFromConfig(cfg.Server, server.WithLogger(a.logger))
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	return a, nil
}

// NewLogger builds the process logger from the environment preset and level.
func NewLogger(cfg Config) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves HTTP until ctx is cancelled. The in-memory limiter store, when
// used, is swept in the same group.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	if a.memory != nil {
		g.Go(a.memory.Run(ctx))
	}

	a.logger.InfoContext(ctx, "api started",
		logger.Component("app"),
		slog.String("addr", a.config.Server.Addr),
		slog.Int("routes", len(a.router.Routes())),
	)
	return g.Wait()
}

// Close releases database connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) newRouter(h *api.Handler) router.Router[*router.Context] {
	r := router.New[*router.Context](
		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](a.logger),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
				Logger: a.logger,
				Skip: func(ctx handler.Context) bool {
					return ctx.Request().URL.Path == "/health/live"
				},
			}),
			middleware.CORS[*router.Context](middleware.CORSConfig{
				AllowOrigins:  a.config.CORSAllowOrigins,
				ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
				MaxAge:        a.config.CORSMaxAge,
			}),
		),
	)

	// Preflights need a matching route for the middleware chain to run.
	r.Method("/{path...}", func(*router.Context) handler.Response { return response.NoContent() }, http.MethodOptions)

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](a.logger, a.healthChecks()...))

	h.Register(r)
	return r
}

func (a *App) healthChecks() []health.Check {
	checks := []health.Check{{Name: "mongo", Fn: mongo.Healthcheck(a.mongo)}}
	if a.redis != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(a.redis)})
	}
	return checks
}

// limiterStore picks Redis when REDIS_URL is set so limits hold across
// instances, and an in-memory store otherwise.
func (a *App) limiterStore(ctx context.Context) (ratelimiter.Store, error) {
	if a.config.Redis.ConnectionURL == "" {
		a.memory = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(a.logger))
		return a.memory, nil
	}
	client, err := redis.Connect(ctx, a.config.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = client
	return ratelimiter.NewRedisStore(client, "nailted:ratelimit:"), nil
}

func newSender(cfg Config, log *slog.Logger) (email.EmailSender, error) {
	if !cfg.Postmark.Enabled() {
		log.Warn("postmark is not configured, emails are written to disk",
			logger.Component("email"),
			slog.String("dir", cfg.EmailDevDir),
		)
		return email.NewDevSender(cfg.EmailDevDir), nil
	}
	return postmark.New(cfg.Postmark)
}
