package services

import "errors"

var (
	// ErrValidation marks malformed input rejected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownAction marks an action type outside the dispatch table.
	ErrUnknownAction = errors.New("unknown action type")
)
