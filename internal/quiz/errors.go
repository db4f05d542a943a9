package quiz

import "errors"

var (
	ErrNoQuestions    = errors.New("quiz: no questions found")
	ErrFailedToLoad   = errors.New("quiz: failed to load questions")
	ErrFailedToIndex  = errors.New("quiz: failed to create indexes")
	ErrCategoryLookup = errors.New("quiz: failed to load categories")
)
