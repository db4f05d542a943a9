package validator

import (
	"errors"
	"strings"
)

// ErrValidation matches any ValidationErrors with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one failed rule. Field is the JSON name when the
// struct field has one.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule of a struct.
type ValidationErrors []ValidationError

func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Fields maps each field to its first message, ready for an error response.
func (e ValidationErrors) Fields() map[string]any {
	out := make(map[string]any, len(e))
	for _, err := range e {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// Rule is a lazily evaluated check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}
