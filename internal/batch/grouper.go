// Package batch groups a calendar's events into batches: contiguous runs of
// same-summary events close enough in time to be managed as one unit.
package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
)

// DefaultGapDays is the largest calendar-day gap between the end of one event
// and the start of the next that still keeps them in the same batch.
const DefaultGapDays = 3

// Group partitions a chronologically sorted event list into batches using
// DefaultGapDays.
func Group(events []model.CalendarEvent, calendarID string) ([]model.Batch, error) {
	return GroupWithThreshold(events, calendarID, DefaultGapDays)
}

// GroupWithThreshold partitions events into batches. A new batch starts when
// the summary changes, or when the day gap between the previous event's end
// and the next event's start exceeds gapDays. The result is an exact
// order-preserving partition of the input: concatenating the batches' event
// lists reproduces the input.
//
// Events with a zero end time use their start time for gap computation.
// Empty input yields an empty (nil) result.
func GroupWithThreshold(events []model.CalendarEvent, calendarID string, gapDays int) ([]model.Batch, error) {
	if err := validate(events); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	var batches []model.Batch
	current := []model.CalendarEvent{events[0]}

	for _, ev := range events[1:] {
		prev := current[len(current)-1]
		if ev.Summary == prev.Summary && dayGap(prev.EffectiveEnd(), ev.StartTime) <= gapDays {
			current = append(current, ev)
			continue
		}
		batches = append(batches, seal(current, calendarID))
		current = []model.CalendarEvent{ev}
	}
	batches = append(batches, seal(current, calendarID))

	return batches, nil
}

func validate(events []model.CalendarEvent) error {
	for i, ev := range events {
		if ev.ID == "" {
			return fmt.Errorf("event %d: %w", i, ErrMissingEventID)
		}
		if ev.StartTime.IsZero() {
			return fmt.Errorf("event %d (%s): %w", i, ev.ID, ErrMissingStart)
		}
	}
	return nil
}

// seal closes a run of events into a Batch, stamping a fresh batch ID onto
// copies of the members.
func seal(events []model.CalendarEvent, calendarID string) model.Batch {
	id := uuid.New().String()

	members := make([]model.CalendarEvent, len(events))
	for i, ev := range events {
		ev.BatchID = id
		if ev.CalendarID == "" {
			ev.CalendarID = calendarID
		}
		members[i] = ev
	}

	first := members[0]
	last := members[len(members)-1]

	return model.Batch{
		ID:         id,
		CalendarID: calendarID,
		Description: fmt.Sprintf("%s (%s - %s)",
			first.Summary,
			first.StartTime.Format("2006-01-02"),
			last.StartTime.Format("2006-01-02")),
		Events: members,
	}
}

// dayGap returns the number of calendar days from a's date to b's date.
func dayGap(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
