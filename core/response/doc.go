// Package response builds handler.Response values for JSON APIs and converts
// errors into structured HTTP error bodies.
//
// Successful responses:
//
//	return response.JSON(session)                 // 200
//	return response.Created(session)              // 201
//	return response.NoContent()                   // 204
//
// Errors are returned as responses and rendered by the router's error handler:
//
//	return response.Error(response.ErrNotFound.WithMessage("session not found"))
//
// JSONErrorHandler renders any error as
//
//	{"code":"not_found","message":"session not found","details":{...}}
//
// using the HTTPError carried by the error chain, a StatusCode() int method on
// the error, or 500 as the last resort.
package response
