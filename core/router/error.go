package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Arokeji/Nailted-Back/core/handler"
)

// ErrNotFound is passed to the error handler for unmatched requests.
// It reports 404 through StatusCode.
var ErrNotFound error = statusError{status: http.StatusNotFound, msg: "route not found"}

var (
	ErrNoContextFactory = errors.New("no context factory provided and C is not *Context")
	ErrNilResponse      = errors.New("handler returned nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrNilHandler       = errors.New("handler cannot be nil")
)

type statusCode interface {
	StatusCode() int
}

type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.status }

// defaultErrorHandler writes a plain text error.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, http.StatusText(status), status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
