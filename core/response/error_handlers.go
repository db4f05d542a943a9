package response

import (
	"errors"
	"net/http"

	"github.com/Arokeji/Nailted-Back/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
// HTTPError values found in the chain are returned as is, errors exposing
// StatusCode() are mapped to the matching catalogue entry, the rest become 500.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = HTTPError{
			Status:  status,
			Code:    "error",
			Message: http.StatusText(status),
		}
	}

	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}

// JSONErrorHandler renders errors as JSON bodies.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
