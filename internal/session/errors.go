package session

import "errors"

var (
	ErrNotFound        = errors.New("session: not found")
	ErrEmailTooLong    = errors.New("session: email exceeds 72 bytes")
	ErrInvalidCategory = errors.New("session: invalid category id")
	ErrMissingIndexKey = errors.New("session: email index key is required")
	ErrInvalidHashCost = errors.New("session: invalid email hash cost")
	ErrFailedToHash    = errors.New("session: failed to hash email")
	ErrStore           = errors.New("session: store failure")
)
