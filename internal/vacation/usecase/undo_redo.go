package usecase

import (
	"context"
	"fmt"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

// Undo reverses the most recent operation: created events are deleted,
// deleted events recreated, updates rolled back and imports forgotten.
func (uc *implUseCase) Undo(ctx context.Context) (vacation.HistoryStepOutput, error) {
	op, ok := uc.store.Undo()
	if !ok {
		return vacation.HistoryStepOutput{}, vacation.ErrNothingToUndo
	}

	uc.l.Infof(ctx, "Undo: %s %q", op.Type, op.Description)

	out := vacation.HistoryStepOutput{Operation: op}

	switch op.Type {
	case model.OperationCreate:
		removed, missing, err := uc.deleteEvents(ctx, op.EventSnapshots)
		if err != nil {
			return out, err
		}
		out.EventsRemove = removed + missing
		for _, id := range op.BatchIDs {
			uc.unregisterBatch(id)
		}

	case model.OperationDelete:
		recreated, err := uc.createEvents(ctx, op.EventSnapshots)
		if err != nil {
			uc.rollbackEvents(ctx, recreated)
			return out, err
		}
		out.EventsAdded = len(recreated)
		// The recreated events carry new IDs; the redo stack entry must
		// reference them or a later redo would delete ghosts.
		op.EventSnapshots = recreated
		op.AffectedEventIDs = eventIDs(recreated)
		uc.store.ReplaceRedoTop(op)
		out.Operation = op
		for _, b := range batchesFromSnapshots(recreated) {
			uc.registerBatch(b)
		}

	case model.OperationUpdate:
		removed, missing, err := uc.deleteEvents(ctx, op.EventSnapshots)
		if err != nil {
			return out, err
		}
		restored, err := uc.createEvents(ctx, op.OldEventSnapshots)
		if err != nil {
			uc.rollbackEvents(ctx, restored)
			return out, err
		}
		out.EventsRemove = removed + missing
		out.EventsAdded = len(restored)
		op.OldEventSnapshots = restored
		uc.store.ReplaceRedoTop(op)
		out.Operation = op
		for _, id := range op.BatchIDs {
			uc.unregisterBatch(id)
		}
		for _, b := range batchesFromSnapshots(restored) {
			uc.registerBatch(b)
		}

	case model.OperationImport:
		// Imported events existed before the import; undo only forgets them.
		for _, id := range op.BatchIDs {
			uc.unregisterBatch(id)
		}

	default:
		return out, fmt.Errorf("cannot undo operation type %q", op.Type)
	}

	uc.saveHistory(ctx)
	return out, nil
}

// Redo re-applies the most recently undone operation.
func (uc *implUseCase) Redo(ctx context.Context) (vacation.HistoryStepOutput, error) {
	op, ok := uc.store.Redo()
	if !ok {
		return vacation.HistoryStepOutput{}, vacation.ErrNothingToRedo
	}

	uc.l.Infof(ctx, "Redo: %s %q", op.Type, op.Description)

	out := vacation.HistoryStepOutput{Operation: op}

	switch op.Type {
	case model.OperationCreate:
		recreated, err := uc.createEvents(ctx, op.EventSnapshots)
		if err != nil {
			uc.rollbackEvents(ctx, recreated)
			return out, err
		}
		out.EventsAdded = len(recreated)
		op.EventSnapshots = recreated
		op.AffectedEventIDs = eventIDs(recreated)
		uc.store.ReplaceUndoTop(op)
		out.Operation = op
		for _, b := range batchesFromSnapshots(recreated) {
			uc.registerBatch(b)
		}

	case model.OperationDelete:
		removed, missing, err := uc.deleteEvents(ctx, op.EventSnapshots)
		if err != nil {
			return out, err
		}
		out.EventsRemove = removed + missing
		for _, id := range op.BatchIDs {
			uc.unregisterBatch(id)
		}

	case model.OperationUpdate:
		removed, missing, err := uc.deleteEvents(ctx, op.OldEventSnapshots)
		if err != nil {
			return out, err
		}
		recreated, err := uc.createEvents(ctx, op.EventSnapshots)
		if err != nil {
			uc.rollbackEvents(ctx, recreated)
			return out, err
		}
		out.EventsRemove = removed + missing
		out.EventsAdded = len(recreated)
		op.EventSnapshots = recreated
		op.AffectedEventIDs = eventIDs(recreated)
		uc.store.ReplaceUndoTop(op)
		out.Operation = op
		for _, b := range batchesFromSnapshots(op.OldEventSnapshots) {
			uc.unregisterBatch(b.ID)
		}
		for _, b := range batchesFromSnapshots(recreated) {
			uc.registerBatch(b)
		}

	case model.OperationImport:
		for _, b := range batchesFromSnapshots(op.EventSnapshots) {
			uc.registerBatch(b)
		}

	default:
		return out, fmt.Errorf("cannot redo operation type %q", op.Type)
	}

	uc.saveHistory(ctx)
	return out, nil
}
