package vacation

import (
	"errors"
	"strings"
)

// Domain-specific errors for the vacation package.
var (
	ErrBatchNotFound     = errors.New("batch not found")
	ErrOperationNotFound = errors.New("operation not found")
	ErrEmptySchedule     = errors.New("schedule produced no events")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
	ErrEmptyRange        = errors.New("import range is empty")
	ErrCalendarFailed    = errors.New("calendar request failed")
)

// ValidationError carries every violation found in a schedule request so the
// caller can show them all at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid schedule: " + strings.Join(e.Violations, "; ")
}
