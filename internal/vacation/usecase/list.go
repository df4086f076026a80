package usecase

import (
	"context"
	"fmt"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

// ListBatches returns the registered batches in insertion order.
func (uc *implUseCase) ListBatches(ctx context.Context) (vacation.ListBatchesOutput, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	batches := make([]model.Batch, 0, len(uc.batchOrder))
	for _, id := range uc.batchOrder {
		batches = append(batches, uc.batches[id])
	}
	return vacation.ListBatchesOutput{Batches: batches}, nil
}

// BatchDetail returns a single registered batch.
func (uc *implUseCase) BatchDetail(ctx context.Context, batchID string) (vacation.BatchDetailOutput, error) {
	b, ok := uc.lookupBatch(batchID)
	if !ok {
		return vacation.BatchDetailOutput{}, vacation.ErrBatchNotFound
	}
	return vacation.BatchDetailOutput{Batch: b}, nil
}

// ListHistory returns the undo stack plus stack state for the API surface.
func (uc *implUseCase) ListHistory(ctx context.Context) (vacation.ListHistoryOutput, error) {
	return vacation.ListHistoryOutput{
		Operations: uc.store.Operations(),
		Stats:      uc.store.Stats(),
		CanUndo:    uc.store.CanUndo(),
		CanRedo:    uc.store.CanRedo(),
	}, nil
}

// HistoryDetail returns a single recorded operation from either stack.
func (uc *implUseCase) HistoryDetail(ctx context.Context, operationID string) (vacation.HistoryDetailOutput, error) {
	op, ok := uc.store.Find(operationID)
	if !ok {
		return vacation.HistoryDetailOutput{}, vacation.ErrOperationNotFound
	}
	return vacation.HistoryDetailOutput{Operation: op}, nil
}

// ListCalendars surfaces the user's writable calendars.
func (uc *implUseCase) ListCalendars(ctx context.Context) (vacation.ListCalendarsOutput, error) {
	calendars, err := uc.calendar.ListCalendars(ctx)
	if err != nil {
		return vacation.ListCalendarsOutput{}, fmt.Errorf("%w: %v", vacation.ErrCalendarFailed, err)
	}
	return vacation.ListCalendarsOutput{Calendars: calendars}, nil
}
