package vacation

import (
	"context"

	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gmailer"
)

// UseCase defines the business logic interface for the vacation domain.
type UseCase interface {
	// Create expands a schedule request into calendar events and records the
	// resulting batch on the history stack.
	Create(ctx context.Context, input CreateInput) (CreateOutput, error)

	// Update replaces a batch's events with a freshly built schedule.
	Update(ctx context.Context, input UpdateInput) (UpdateOutput, error)

	// Delete removes all events of a batch from the calendar.
	Delete(ctx context.Context, batchID string) (DeleteOutput, error)

	// Import fetches existing events for a date range and groups them into
	// batches so they can be managed like locally created ones.
	Import(ctx context.Context, input ImportInput) (ImportOutput, error)

	// Undo reverses the most recent operation.
	Undo(ctx context.Context) (HistoryStepOutput, error)

	// Redo re-applies the most recently undone operation.
	Redo(ctx context.Context) (HistoryStepOutput, error)

	// ListBatches returns the batches currently known to the service.
	ListBatches(ctx context.Context) (ListBatchesOutput, error)

	// BatchDetail returns a single batch by ID.
	BatchDetail(ctx context.Context, batchID string) (BatchDetailOutput, error)

	// ListHistory returns the operation history and stack state.
	ListHistory(ctx context.Context) (ListHistoryOutput, error)

	// HistoryDetail returns a single recorded operation by ID.
	HistoryDetail(ctx context.Context, operationID string) (HistoryDetailOutput, error)

	// ExportICS renders a batch as an iCalendar document.
	ExportICS(ctx context.Context, batchID string) (ExportICSOutput, error)

	// ListCalendars returns the user's writable calendars.
	ListCalendars(ctx context.Context) (ListCalendarsOutput, error)
}

// Calendar is the slice of the Google Calendar client the vacation domain
// depends on.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	ListCalendars(ctx context.Context) ([]gcalendar.Calendar, error)
}

// Mailer sends notification emails. A nil Mailer disables notifications.
type Mailer interface {
	Send(ctx context.Context, req gmailer.SendRequest) error
}
