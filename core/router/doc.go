// Package router provides a generic HTTP router for handler.HandlerFunc
// endpoints on top of net/http.ServeMux pattern matching.
//
// Patterns use the ServeMux syntax, path parameters are read through
// Context.Param:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//
//	r.Route("/session", func(r router.Router[*router.Context]) {
//		r.Post("", createSession)
//		r.Get("/{id}", getSession)
//	})
//
// Middleware is bound to a route when the route is registered, so Use must be
// called before the routes it should wrap. Requests that match no route are
// passed to the error handler with ErrNotFound; panics are recovered and passed
// as a PanicError.
package router
