// Package sanitizer cleans user input before it is validated or stored.
//
// Struct fields opt in with a `sanitize` tag listing sanitizers applied in
// order:
//
//	type sendResultsRequest struct {
//		Email       string `json:"email" sanitize:"email"`
//		CompanyName string `json:"companyName" sanitize:"strip_html,single_line,max:120"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&req); err != nil {
//		return err
//	}
//
// The string helpers (Trim, SingleLine, StripHTML, MaxLength...) can be used
// directly as well. Custom sanitizers are added with RegisterSanitizer.
package sanitizer
