// Package validator checks request structs with `validate` tags.
//
//	type createSessionRequest struct {
//		Version *int   `json:"version" validate:"required;min:0"`
//		Email   string `json:"email" validate:"email"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		var verrs validator.ValidationErrors
//		if errors.As(err, &verrs) {
//			details := verrs.Fields() // {"version": "is required"}
//		}
//	}
//
// Rules: required, min, max, email and in. Pointers are dereferenced before
// rules other than required run, so optional numeric fields can use *int with
// min/max. Additional rules are added with RegisterValidator.
package validator
