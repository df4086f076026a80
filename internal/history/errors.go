package history

import "errors"

var (
	ErrInvalidOperationType = errors.New("invalid operation type")
	ErrNoAffectedEvents     = errors.New("operation affects no events")
	ErrNoSnapshots          = errors.New("operation has no event snapshots")
)
