package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
	"github.com/Arokeji/Nailted-Back/pkg/ratelimiter"
)

// SessionStore is the session access layer used by the handlers.
type SessionStore interface {
	Create(ctx context.Context, params session.CreateParams) (*session.Session, error)
	Update(ctx context.Context, id string, p session.Patch) (*session.Session, error)
	GetByID(ctx context.Context, id string) (*session.Session, error)
	GetResults(ctx context.Context, id string) (*session.Results, error)
	GetByEmail(ctx context.Context, email string) (*session.Session, error)
}

// QuizStore provides the current question set.
type QuizStore interface {
	CurrentQuestions(ctx context.Context) (*quiz.QuestionSet, error)
}

// Handler holds the HTTP handlers for sessions and quizzes.
type Handler struct {
	sessions SessionStore
	quizzes  QuizStore
	sender   email.EmailSender
	limiter  ratelimiter.RateLimiter
	log      *slog.Logger
	appName  string
}

type Option func(*Handler)

func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithSendResultsLimiter limits how often results of one session can be mailed.
func WithSendResultsLimiter(l ratelimiter.RateLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// WithAppName sets the product name used in email subjects.
func WithAppName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.appName = name
		}
	}
}

func New(sessions SessionStore, quizzes QuizStore, sender email.EmailSender, opts ...Option) *Handler {
	h := &Handler{
		sessions: sessions,
		quizzes:  quizzes,
		sender:   sender,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		appName:  "Nailted",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
