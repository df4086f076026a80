package http

import (
	"errors"

	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	pkgErrors "github.com/dtg01100/vacation-calendar-updater/pkg/errors"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// RULE: panic on unknown errors in development to force explicit handling.
func (h *handler) mapError(err error) error {
	var vErr *vacation.ValidationError
	if errors.As(err, &vErr) {
		return pkgErrors.NewHTTPError(400, vErr.Error())
	}

	switch {
	case errors.Is(err, vacation.ErrBatchNotFound):
		return pkgErrors.NewHTTPError(404, "batch not found")
	case errors.Is(err, vacation.ErrOperationNotFound):
		return pkgErrors.NewHTTPError(404, "operation not found")
	case errors.Is(err, vacation.ErrNothingToUndo):
		return pkgErrors.NewHTTPError(409, "nothing to undo")
	case errors.Is(err, vacation.ErrNothingToRedo):
		return pkgErrors.NewHTTPError(409, "nothing to redo")
	case errors.Is(err, vacation.ErrEmptySchedule):
		return pkgErrors.NewHTTPError(400, "schedule produced no events")
	case errors.Is(err, vacation.ErrEmptyRange):
		return pkgErrors.NewHTTPError(400, "import range is empty")
	case errors.Is(err, vacation.ErrCalendarFailed):
		return pkgErrors.NewHTTPError(502, "calendar request failed")
	default:
		// Force developers to explicitly handle every domain error.
		// In production this should return ErrInternalServerError instead of panic.
		panic(err)
	}
}
