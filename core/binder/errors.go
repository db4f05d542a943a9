package binder

import "errors"

var (
	// ErrUnsupportedMediaType is returned when the Content-Type is not application/json.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType is returned when a body is sent without a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrFailedToParseJSON covers malformed, oversized or trailing JSON input.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParsePath indicates path parameter extraction or conversion failed.
	ErrFailedToParsePath = errors.New("failed to parse path parameters")
)
