package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// PathValue extracts route parameters registered with net/http.ServeMux patterns.
func PathValue(r *http.Request, name string) string {
	return r.PathValue(name)
}

// Path creates a path parameter binder using the provided extractor.
//
// Fields are matched by the `path` tag; `path:"-"` skips a field and an
// untagged field uses its lowercased name. Missing parameters leave the field
// untouched.
func Path(extractor func(r *http.Request, name string) string) Binder {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(rt.Field(i), "path")
			if skip {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, rt.Field(i).Type, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, rt.Field(i).Name, err)
			}
		}

		return nil
	}
}
