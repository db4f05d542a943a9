// Package handler defines the request processing abstractions shared by the
// router, response helpers and middleware.
//
// Handlers receive a typed request context and return a Response. Rendering is
// deferred until the router calls the Response, so middleware can decorate the
// outcome (headers, logging) without touching the handler itself:
//
//	func getSession(ctx handler.Context) handler.Response {
//		s, err := store.GetByID(ctx, ctx.Param("id"))
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(s)
//	}
//
// Errors returned from a Response are passed to the router's ErrorHandler.
package handler
