package handler

import "net/http"

// Response renders an HTTP response. A returned error is handed to the
// router's ErrorHandler unless the response has already been written.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe request handler bound to a context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors produced while handling a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler to add cross-cutting behavior.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain applies middlewares so that the first one runs outermost.
func Chain[C Context](endpoint HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
