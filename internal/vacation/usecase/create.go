package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

// Create validates a schedule request, expands it into calendar events and
// records the new batch on the history stack.
func (uc *implUseCase) Create(ctx context.Context, input vacation.CreateInput) (vacation.CreateOutput, error) {
	req := uc.applyDefaults(input.Schedule)

	if violations := schedule.Validate(req); len(violations) > 0 {
		return vacation.CreateOutput{}, &vacation.ValidationError{Violations: violations}
	}

	slots, err := schedule.Build(req)
	if err != nil {
		return vacation.CreateOutput{}, fmt.Errorf("failed to build schedule: %w", err)
	}
	if len(slots) == 0 {
		return vacation.CreateOutput{}, vacation.ErrEmptySchedule
	}

	uc.l.Infof(ctx, "Create: event=%q calendar=%s days=%d", req.EventName, req.CalendarID, len(slots))

	batchID := uuid.New().String()
	snapshot := req.Snapshot()

	planned := make([]model.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		planned = append(planned, model.CalendarEvent{
			CalendarID: req.CalendarID,
			Summary:    req.EventName,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			BatchID:    batchID,
			Snapshot:   snapshot,
		})
	}

	events, err := uc.createEvents(ctx, planned)
	if err != nil {
		uc.rollbackEvents(ctx, events)
		return vacation.CreateOutput{}, err
	}

	b := model.Batch{
		ID:          batchID,
		CalendarID:  req.CalendarID,
		Description: batchDescription(events),
		Events:      events,
	}
	uc.registerBatch(b)

	opID, err := uc.store.Record(model.Operation{
		Type:             model.OperationCreate,
		Description:      b.Description,
		AffectedEventIDs: eventIDs(events),
		EventSnapshots:   events,
		BatchIDs:         []string{batchID},
	})
	if err != nil {
		uc.l.Errorf(ctx, "Create: failed to record operation: %v", err)
	}
	uc.saveHistory(ctx)

	sent := uc.sendNotification(ctx, snapshot,
		fmt.Sprintf("Vacation calendar updated: %s", req.EventName), events)

	return vacation.CreateOutput{
		Batch:       b,
		OperationID: opID,
		EmailSent:   sent,
	}, nil
}

func eventIDs(events []model.CalendarEvent) []string {
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	return ids
}
