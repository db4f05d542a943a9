package api

import (
	"github.com/Arokeji/Nailted-Back/core/router"
	"github.com/Arokeji/Nailted-Back/middleware"
)

// Register mounts the session and quiz routes on r.
func (h *Handler) Register(r router.Router[*router.Context]) {
	r.Route("/session", func(r router.Router[*router.Context]) {
		r.Post("", h.CreateSession)
		r.Get("/email/{email}", h.GetSessionByEmail)
		r.Put("/{id}/results", h.UpdateResults)
		r.Get("/{id}", h.GetSession)

		send := r
		if h.limiter != nil {
			send = r.With(middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
				Limiter:      h.limiter,
				KeyExtractor: middleware.PathParamKey("send-results:", "id"),
				Logger:       h.log,
			}))
		}
		send.Put("/{id}/send-results", h.SendResults)

		r.Put("/{id}", h.UpdateSession)
	})

	r.Route("/quizz", func(r router.Router[*router.Context]) {
		r.Get("/current-version", h.CurrentQuestions)
	})
}
