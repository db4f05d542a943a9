package binder

import "net/http"

// Binder binds part of an HTTP request into a Go value.
type Binder func(r *http.Request, v any) error

// Bind applies binders in order and stops at the first error.
func Bind(r *http.Request, v any, binders ...Binder) error {
	for _, b := range binders {
		if err := b(r, v); err != nil {
			return err
		}
	}
	return nil
}
