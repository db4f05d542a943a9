// Package binder maps HTTP request data onto Go structs.
//
// Two binders are provided: JSON for request bodies and Path for route
// parameters. Both sanitize string input by stripping control characters and
// surrounding whitespace, so handlers can validate the values directly.
//
//	type sendResultsRequest struct {
//		ID          string `path:"id" json:"-"`
//		Email       string `json:"email"`
//		CompanyName string `json:"companyName"`
//	}
//
//	var req sendResultsRequest
//	err := binder.Bind(r, &req, binder.Path(binder.PathValue), binder.JSON())
//
// All failures wrap one of the package sentinels, so callers map them to a
// 400 or 415 response with errors.Is.
package binder
