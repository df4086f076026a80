package batch

import "errors"

// Validation errors for grouper input.
var (
	ErrMissingEventID = errors.New("event is missing an id")
	ErrMissingStart   = errors.New("event is missing a start time")
)
