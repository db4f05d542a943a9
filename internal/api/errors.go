package api

import (
	"context"
	"errors"

	"github.com/Arokeji/Nailted-Back/core/binder"
	"github.com/Arokeji/Nailted-Back/core/email"
	"github.com/Arokeji/Nailted-Back/core/response"
	"github.com/Arokeji/Nailted-Back/internal/quiz"
	"github.com/Arokeji/Nailted-Back/internal/session"
)

const (
	msgSessionNotFound = "session not found"
	msgNoQuestions     = "no questions found"
	msgInvalidBody     = "invalid request body"
	msgEmailFailed     = "failed to send email"
)

// mapError converts domain errors to HTTP errors. Store failures are reported
// as a bare 500 so driver messages never reach clients.
func mapError(err error) error {
	var httpErr response.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, session.ErrNotFound):
		return response.ErrNotFound.WithMessage(msgSessionNotFound)
	case errors.Is(err, quiz.ErrNoQuestions):
		return response.ErrNotFound.WithMessage(msgNoQuestions)
	case errors.Is(err, session.ErrInvalidCategory):
		return response.ErrBadRequest.WithMessage(err.Error()).
			WithDetails(map[string]any{"categoryScore": "category must be a valid id"})
	case errors.Is(err, session.ErrEmailTooLong):
		return response.ErrBadRequest.WithMessage("email is too long").
			WithDetails(map[string]any{"email": "must be at most 72 bytes"})
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrFailedToParsePath):
		return response.ErrBadRequest.WithMessage(msgInvalidBody).WithError(err)
	case errors.Is(err, email.ErrFailedToSendEmail), errors.Is(err, email.ErrInvalidParams):
		return response.ErrInternalServerError.WithMessage(msgEmailFailed)
	case errors.Is(err, context.DeadlineExceeded):
		return response.ErrServiceUnavailable
	default:
		return response.ErrInternalServerError
	}
}

// validationError builds a 400 listing the offending fields.
func validationError(fields map[string]any) error {
	return response.ErrBadRequest.WithMessage("validation failed").WithDetails(fields)
}
