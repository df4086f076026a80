package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

// Update deletes a batch's existing events and rebuilds it from a new
// schedule request. Both old and new snapshots go into the history operation
// so the change can be undone.
func (uc *implUseCase) Update(ctx context.Context, input vacation.UpdateInput) (vacation.UpdateOutput, error) {
	old, ok := uc.lookupBatch(input.BatchID)
	if !ok {
		return vacation.UpdateOutput{}, vacation.ErrBatchNotFound
	}

	req := input.Schedule
	// Fields left blank inherit from the schedule that built the batch, so a
	// partial update does not have to restate everything.
	if len(old.Events) > 0 && old.Events[0].Snapshot != nil {
		if prev, prevErr := schedule.FromSnapshot(old.Events[0].Snapshot); prevErr == nil {
			req = mergeSchedule(req, prev)
		}
	}
	if req.CalendarID == "" {
		req.CalendarID = old.CalendarID
	}
	req = uc.applyDefaults(req)

	if violations := schedule.Validate(req); len(violations) > 0 {
		return vacation.UpdateOutput{}, &vacation.ValidationError{Violations: violations}
	}

	slots, err := schedule.Build(req)
	if err != nil {
		return vacation.UpdateOutput{}, fmt.Errorf("failed to build schedule: %w", err)
	}
	if len(slots) == 0 {
		return vacation.UpdateOutput{}, vacation.ErrEmptySchedule
	}

	uc.l.Infof(ctx, "Update: batch=%s event=%q days=%d", input.BatchID, req.EventName, len(slots))

	deleted, missing, err := uc.deleteEvents(ctx, old.Events)
	if err != nil {
		return vacation.UpdateOutput{}, err
	}

	newBatchID := uuid.New().String()
	snapshot := req.Snapshot()

	planned := make([]model.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		planned = append(planned, model.CalendarEvent{
			CalendarID: req.CalendarID,
			Summary:    req.EventName,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			BatchID:    newBatchID,
			Snapshot:   snapshot,
		})
	}

	events, err := uc.createEvents(ctx, planned)
	if err != nil {
		uc.rollbackEvents(ctx, events)
		return vacation.UpdateOutput{}, err
	}

	b := model.Batch{
		ID:          newBatchID,
		CalendarID:  req.CalendarID,
		Description: batchDescription(events),
		Events:      events,
	}
	uc.unregisterBatch(old.ID)
	uc.registerBatch(b)

	opID, err := uc.store.Record(model.Operation{
		Type:              model.OperationUpdate,
		Description:       fmt.Sprintf("%s (was %s)", b.Description, old.Description),
		AffectedEventIDs:  eventIDs(events),
		EventSnapshots:    events,
		OldEventSnapshots: old.Events,
		BatchIDs:          []string{newBatchID},
	})
	if err != nil {
		uc.l.Errorf(ctx, "Update: failed to record operation: %v", err)
	}
	uc.saveHistory(ctx)

	return vacation.UpdateOutput{
		Batch:        b,
		OperationID:  opID,
		DeletedCount: deleted + missing,
	}, nil
}

// Delete removes every event of a batch from the calendar. Events already
// gone are tolerated so a half-deleted batch can still be cleaned up.
func (uc *implUseCase) Delete(ctx context.Context, batchID string) (vacation.DeleteOutput, error) {
	b, ok := uc.lookupBatch(batchID)
	if !ok {
		return vacation.DeleteOutput{}, vacation.ErrBatchNotFound
	}

	uc.l.Infof(ctx, "Delete: batch=%s events=%d", batchID, len(b.Events))

	deleted, missing, err := uc.deleteEvents(ctx, b.Events)
	if err != nil {
		return vacation.DeleteOutput{}, err
	}

	uc.unregisterBatch(batchID)

	opID, err := uc.store.Record(model.Operation{
		Type:             model.OperationDelete,
		Description:      b.Description,
		AffectedEventIDs: eventIDs(b.Events),
		EventSnapshots:   b.Events,
		BatchIDs:         []string{batchID},
	})
	if err != nil {
		uc.l.Errorf(ctx, "Delete: failed to record operation: %v", err)
	}
	uc.saveHistory(ctx)

	var snapshot *model.ScheduleSnapshot
	if len(b.Events) > 0 {
		snapshot = b.Events[0].Snapshot
	}
	sent := uc.sendNotification(ctx, snapshot,
		fmt.Sprintf("Vacation calendar entries removed: %s", b.Summary()), b.Events)

	return vacation.DeleteOutput{
		BatchID:      batchID,
		Description:  b.Description,
		DeletedCount: deleted,
		MissingCount: missing,
		OperationID:  opID,
		EmailSent:    sent,
	}, nil
}
