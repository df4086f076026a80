package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/dtg01100/vacation-calendar-updater/internal/batch"
	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
)

// Import fetches the calendar's events for a date range and groups them into
// batches so previously hand-created vacations become manageable here.
func (uc *implUseCase) Import(ctx context.Context, input vacation.ImportInput) (vacation.ImportOutput, error) {
	calendarID := input.CalendarID
	if calendarID == "" {
		calendarID = uc.defaults.CalendarID
	}
	if input.To.IsZero() || !input.To.After(input.From) {
		return vacation.ImportOutput{}, vacation.ErrEmptyRange
	}

	uc.l.Infof(ctx, "Import: calendar=%s from=%s to=%s",
		calendarID, input.From.Format("2006-01-02"), input.To.Format("2006-01-02"))

	fetched, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    input.From,
		TimeMax:    input.To,
	})
	if err != nil {
		return vacation.ImportOutput{}, fmt.Errorf("%w: %v", vacation.ErrCalendarFailed, err)
	}

	events := make([]model.CalendarEvent, 0, len(fetched))
	for _, ev := range fetched {
		if ev.ID == "" || ev.StartTime.IsZero() {
			continue
		}
		events = append(events, model.CalendarEvent{
			ID:         ev.ID,
			CalendarID: calendarID,
			Summary:    ev.Summary,
			StartTime:  ev.StartTime,
			EndTime:    ev.EndTime,
			AllDay:     ev.AllDay,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	batches, err := batch.GroupWithThreshold(events, calendarID, uc.defaults.GapDays)
	if err != nil {
		return vacation.ImportOutput{}, fmt.Errorf("failed to group events: %w", err)
	}

	if len(batches) == 0 {
		return vacation.ImportOutput{}, nil
	}

	batchIDs := make([]string, 0, len(batches))
	var snapshots []model.CalendarEvent
	for _, b := range batches {
		uc.registerBatch(b)
		batchIDs = append(batchIDs, b.ID)
		snapshots = append(snapshots, b.Events...)
	}

	opID, err := uc.store.Record(model.Operation{
		Type:             model.OperationImport,
		Description:      fmt.Sprintf("Imported %d events into %d batches", len(snapshots), len(batches)),
		AffectedEventIDs: eventIDs(snapshots),
		EventSnapshots:   snapshots,
		BatchIDs:         batchIDs,
	})
	if err != nil {
		uc.l.Errorf(ctx, "Import: failed to record operation: %v", err)
	}
	uc.saveHistory(ctx)

	uc.l.Infof(ctx, "Import: grouped %d events into %d batches", len(snapshots), len(batches))

	return vacation.ImportOutput{
		Batches:     batches,
		EventCount:  len(snapshots),
		OperationID: opID,
	}, nil
}
