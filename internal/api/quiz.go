package api

import (
	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
)

// CurrentQuestions handles GET /quizz/current-version.
func (h *Handler) CurrentQuestions(ctx *router.Context) handler.Response {
	set, err := h.quizzes.CurrentQuestions(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(set)
}
