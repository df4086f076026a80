package usecase

import (
	"sync"

	"github.com/dtg01100/vacation-calendar-updater/internal/batch"
	"github.com/dtg01100/vacation-calendar-updater/internal/history"
	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	pkgLog "github.com/dtg01100/vacation-calendar-updater/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	calendar vacation.Calendar
	mailer   vacation.Mailer
	store    *history.Store

	// Registry of batches the service currently manages, rebuilt from the
	// history stacks on startup.
	mu         sync.RWMutex
	batches    map[string]model.Batch
	batchOrder []string

	defaults vacation.Defaults
}

// New creates a new vacation UseCase instance. mailer may be nil to disable
// notification emails. defaults prefill schedule requests that leave the
// corresponding fields empty.
func New(
	l pkgLog.Logger,
	calendar vacation.Calendar,
	mailer vacation.Mailer,
	store *history.Store,
	defaults vacation.Defaults,
) *implUseCase {
	if defaults.GapDays <= 0 {
		defaults.GapDays = batch.DefaultGapDays
	}
	uc := &implUseCase{
		l:        l,
		calendar: calendar,
		mailer:   mailer,
		store:    store,
		batches:  make(map[string]model.Batch),
		defaults: defaults,
	}
	uc.seedRegistry()
	return uc
}

// seedRegistry replays the undo stack so batches created before a restart can
// still be updated, deleted and exported.
func (uc *implUseCase) seedRegistry() {
	for _, op := range uc.store.Operations() {
		switch op.Type {
		case model.OperationCreate, model.OperationImport:
			for _, b := range batchesFromSnapshots(op.EventSnapshots) {
				uc.registerBatch(b)
			}
		case model.OperationUpdate:
			for _, b := range batchesFromSnapshots(op.OldEventSnapshots) {
				uc.unregisterBatch(b.ID)
			}
			for _, b := range batchesFromSnapshots(op.EventSnapshots) {
				uc.registerBatch(b)
			}
		case model.OperationDelete:
			for _, id := range op.BatchIDs {
				uc.unregisterBatch(id)
			}
		}
	}
}
