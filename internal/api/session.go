package api

import (
	"errors"
	"net/http"

	"github.com/Arokeji/Nailted-Back/core/binder"
	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/core/router"
	"github.com/Arokeji/Nailted-Back/core/sanitizer"
	"github.com/Arokeji/Nailted-Back/core/validator"
	"github.com/Arokeji/Nailted-Back/internal/session"
)

type createSessionRequest struct {
	Version *int   `json:"version" validate:"required;min:0"`
	Email   string `json:"email" sanitize:"email" validate:"email"`
}

type sessionPath struct {
	ID string `path:"id"`
}

// updateSessionRequest uses pointers so that absent fields are left alone.
type updateSessionRequest struct {
	Email         *string                       `json:"email" sanitize:"email" validate:"email"`
	GlobalScore   *float64                      `json:"globalScore"`
	CategoryScore *[]session.CategoryScoreInput `json:"categoryScore"`
}

// resultsRequest is the body of PUT /session/{id}/results. A negative
// globalScore is accepted and ignored by the store.
type resultsRequest struct {
	GlobalScore   *float64                      `json:"globalScore"`
	CategoryScore *[]session.CategoryScoreInput `json:"categoryScore"`
}

// CreateSession handles POST /session.
func (h *Handler) CreateSession(ctx *router.Context) handler.Response {
	var req createSessionRequest
	if err := bindRequest(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}

	s, err := h.sessions.Create(ctx, session.CreateParams{Version: *req.Version, Email: req.Email})
	if err != nil {
		return h.fail(ctx, err)
	}

	h.log.InfoContext(ctx, "session created",
		logger.Component("api"),
		logger.SessionID(s.ID.Hex()),
		logger.QuizVersion(s.Version),
	)
	return response.Created(s)
}

// GetSession handles GET /session/{id}.
func (h *Handler) GetSession(ctx *router.Context) handler.Response {
	id, err := sessionID(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	s, err := h.sessions.GetByID(ctx, id)
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(s)
}

// GetSessionByEmail handles GET /session/email/{email}.
func (h *Handler) GetSessionByEmail(ctx *router.Context) handler.Response {
	addr := binder.PathValue(ctx.Request(), "email")
	if session.Normalize(addr) == "" {
		return response.Error(validationError(map[string]any{"email": "is required"}))
	}
	s, err := h.sessions.GetByEmail(ctx, addr)
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(s)
}

// UpdateSession handles PUT /session/{id}.
func (h *Handler) UpdateSession(ctx *router.Context) handler.Response {
	id, err := sessionID(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	var req updateSessionRequest
	if err := bindRequest(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}

	s, err := h.sessions.Update(ctx, id, session.Patch{
		Email:         req.Email,
		GlobalScore:   req.GlobalScore,
		CategoryScore: req.CategoryScore,
	})
	if err != nil {
		return h.fail(ctx, err)
	}
	return response.JSON(s)
}

// UpdateResults handles PUT /session/{id}/results and answers with the
// stored results. Only scores are taken from the body.
func (h *Handler) UpdateResults(ctx *router.Context) handler.Response {
	id, err := sessionID(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	var req resultsRequest
	if err := bindRequest(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}

	s, err := h.sessions.Update(ctx, id, session.Patch{
		GlobalScore:   req.GlobalScore,
		CategoryScore: req.CategoryScore,
	})
	if err != nil {
		return h.fail(ctx, err)
	}

	h.log.InfoContext(ctx, "session results stored",
		logger.Component("api"),
		logger.SessionID(id),
		logger.Count("categories", len(s.CategoryScore)),
	)
	return response.JSON(s.Results())
}

// bindRequest decodes the JSON body, then sanitizes and validates it by tags.
func bindRequest(ctx *router.Context, v any) error {
	if err := binder.Bind(ctx.Request(), v, binder.JSON()); err != nil {
		return err
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}
	if err := validator.ValidateStruct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError(verrs.Fields())
		}
		return err
	}
	return nil
}

func sessionID(ctx *router.Context) (string, error) {
	var p sessionPath
	if err := binder.Bind(ctx.Request(), &p, binder.Path(binder.PathValue)); err != nil {
		return "", err
	}
	if p.ID == "" {
		return "", validationError(map[string]any{"id": "is required"})
	}
	return p.ID, nil
}

// fail maps err to an HTTP error response. Server side failures are logged
// with their cause since the client only sees a generic message.
func (h *Handler) fail(ctx *router.Context, err error) handler.Response {
	mapped := mapError(err)
	if response.ToHTTPError(mapped).Status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "request failed",
			logger.Component("api"),
			logger.Method(ctx.Request().Method),
			logger.Path(ctx.Request().URL.Path),
			logger.Error(err),
		)
	}
	return response.Error(mapped)
}
