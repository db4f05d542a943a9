// Package api exposes quiz sessions and the current question set over HTTP.
//
//	POST /session                     create a session, body {"version": 1}
//	GET  /session/email/{email}       find a session by owner email
//	PUT  /session/{id}/results        store scores, answers with the results
//	GET  /session/{id}                fetch a session
//	PUT  /session/{id}/send-results   mail the results and record the owner
//	PUT  /session/{id}                partial update
//	GET  /quizz/current-version       current question set
//
// Handlers answer JSON. Errors go through the router's error handler as
// response.HTTPError values: 400 for invalid input, 404 for unknown sessions,
// 429 when results are mailed too often and 500 for store or delivery
// failures.
package api
