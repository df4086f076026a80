package vacation

import (
	"time"

	"github.com/dtg01100/vacation-calendar-updater/internal/history"
	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
)

// Defaults are config-sourced values filled into schedule requests when the
// caller leaves the corresponding fields empty. A zero StartClock counts as
// unset.
type Defaults struct {
	CalendarID        string
	Timezone          string
	GapDays           int
	NotificationEmail string
	StartClock        schedule.Clock
	DayLengthHours    float64
	Weekdays          map[string]bool
}

// CreateInput is the input for creating a vacation batch.
type CreateInput struct {
	Schedule schedule.Request
}

// CreateOutput is the result of a batch creation.
type CreateOutput struct {
	Batch       model.Batch
	OperationID string
	EmailSent   bool
}

// UpdateInput is the input for replacing a batch's schedule.
type UpdateInput struct {
	BatchID  string
	Schedule schedule.Request
}

// UpdateOutput is the result of a batch update.
type UpdateOutput struct {
	Batch        model.Batch
	OperationID  string
	DeletedCount int
}

// DeleteOutput is the result of a batch deletion. MissingCount counts events
// that were already gone from the calendar.
type DeleteOutput struct {
	BatchID      string
	Description  string
	DeletedCount int
	MissingCount int
	OperationID  string
	EmailSent    bool
}

// ImportInput is the input for importing existing calendar events.
type ImportInput struct {
	CalendarID string
	From       time.Time
	To         time.Time
}

// ImportOutput is the result of an import.
type ImportOutput struct {
	Batches     []model.Batch
	EventCount  int
	OperationID string
}

// HistoryStepOutput describes the effect of an undo or redo.
type HistoryStepOutput struct {
	Operation    model.Operation
	EventsAdded  int
	EventsRemove int
}

// ListBatchesOutput is the list of known batches, oldest first.
type ListBatchesOutput struct {
	Batches []model.Batch
}

// BatchDetailOutput is a single batch.
type BatchDetailOutput struct {
	Batch model.Batch
}

// ListHistoryOutput is the operation history, most recent last.
type ListHistoryOutput struct {
	Operations []model.Operation
	Stats      history.Stats
	CanUndo    bool
	CanRedo    bool
}

// HistoryDetailOutput is a single recorded operation with its event
// snapshots.
type HistoryDetailOutput struct {
	Operation model.Operation
}

// ExportICSOutput is a rendered iCalendar document.
type ExportICSOutput struct {
	Filename string
	Body     string
}

// ListCalendarsOutput is the user's writable calendars.
type ListCalendarsOutput struct {
	Calendars []gcalendar.Calendar
}
