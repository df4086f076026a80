package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gcalendar"
	"github.com/dtg01100/vacation-calendar-updater/pkg/gmailer"
)

// applyDefaults fills request fields the caller left at their zero value
// with the configured defaults. A zero StartClock counts as unset.
func (uc *implUseCase) applyDefaults(req schedule.Request) schedule.Request {
	d := uc.defaults
	if req.CalendarID == "" {
		req.CalendarID = d.CalendarID
	}
	if req.NotificationEmail == "" {
		req.NotificationEmail = d.NotificationEmail
	}
	if (req.StartClock == schedule.Clock{}) {
		req.StartClock = d.StartClock
	}
	if req.DayLengthHours == 0 {
		req.DayLengthHours = d.DayLengthHours
	}
	if len(req.Weekdays) == 0 {
		req.Weekdays = d.Weekdays
	}
	return req
}

// mergeSchedule fills fields the update request left empty from the schedule
// that originally built the batch, so a partial update does not have to
// restate everything.
func mergeSchedule(req, prev schedule.Request) schedule.Request {
	if req.EventName == "" {
		req.EventName = prev.EventName
	}
	if req.NotificationEmail == "" {
		req.NotificationEmail = prev.NotificationEmail
	}
	if req.CalendarID == "" {
		req.CalendarID = prev.CalendarID
	}
	if req.StartDate.IsZero() {
		req.StartDate = prev.StartDate
	}
	if req.EndDate.IsZero() {
		req.EndDate = prev.EndDate
	}
	if (req.StartClock == schedule.Clock{}) {
		req.StartClock = prev.StartClock
	}
	if req.DayLengthHours == 0 {
		req.DayLengthHours = prev.DayLengthHours
	}
	if len(req.Weekdays) == 0 {
		req.Weekdays = prev.Weekdays
	}
	return req
}

// registerBatch adds or replaces a batch in the registry, keeping insertion
// order for listing.
func (uc *implUseCase) registerBatch(b model.Batch) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, exists := uc.batches[b.ID]; !exists {
		uc.batchOrder = append(uc.batchOrder, b.ID)
	}
	uc.batches[b.ID] = b
}

func (uc *implUseCase) unregisterBatch(batchID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, exists := uc.batches[batchID]; !exists {
		return
	}
	delete(uc.batches, batchID)
	for i, id := range uc.batchOrder {
		if id == batchID {
			uc.batchOrder = append(uc.batchOrder[:i], uc.batchOrder[i+1:]...)
			break
		}
	}
}

func (uc *implUseCase) lookupBatch(batchID string) (model.Batch, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	b, ok := uc.batches[batchID]
	return b, ok
}

// batchesFromSnapshots regroups event snapshots by their stamped batch ID,
// preserving first-seen order.
func batchesFromSnapshots(events []model.CalendarEvent) []model.Batch {
	var order []string
	byID := make(map[string][]model.CalendarEvent)
	for _, ev := range events {
		if ev.BatchID == "" {
			continue
		}
		if _, seen := byID[ev.BatchID]; !seen {
			order = append(order, ev.BatchID)
		}
		byID[ev.BatchID] = append(byID[ev.BatchID], ev)
	}

	batches := make([]model.Batch, 0, len(order))
	for _, id := range order {
		evs := byID[id]
		batches = append(batches, model.Batch{
			ID:          id,
			CalendarID:  evs[0].CalendarID,
			Description: batchDescription(evs),
			Events:      evs,
		})
	}
	return batches
}

func batchDescription(events []model.CalendarEvent) string {
	if len(events) == 0 {
		return ""
	}
	first := events[0]
	last := events[len(events)-1]
	return fmt.Sprintf("%s (%s - %s)",
		first.Summary,
		first.StartTime.Format("2006-01-02"),
		last.StartTime.Format("2006-01-02"))
}

// createEvents inserts one calendar event per given snapshot, returning
// copies carrying the newly assigned event IDs.
func (uc *implUseCase) createEvents(ctx context.Context, events []model.CalendarEvent) ([]model.CalendarEvent, error) {
	created := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		calendarID := ev.CalendarID
		if calendarID == "" {
			calendarID = uc.defaults.CalendarID
		}
		out, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID: calendarID,
			Summary:    ev.Summary,
			StartTime:  ev.StartTime,
			EndTime:    ev.EffectiveEnd(),
			Timezone:   uc.defaults.Timezone,
		})
		if err != nil {
			return created, fmt.Errorf("%w: create event %q: %v", vacation.ErrCalendarFailed, ev.Summary, err)
		}
		ev.ID = out.ID
		ev.CalendarID = calendarID
		ev.CreatedAt = time.Now()
		created = append(created, ev)
	}
	return created, nil
}

// deleteEvents removes the given events from the calendar. Events already
// gone (404/410) are counted as missing, not failures.
func (uc *implUseCase) deleteEvents(ctx context.Context, events []model.CalendarEvent) (deleted, missing int, err error) {
	for _, ev := range events {
		calendarID := ev.CalendarID
		if calendarID == "" {
			calendarID = uc.defaults.CalendarID
		}
		if delErr := uc.calendar.DeleteEvent(ctx, calendarID, ev.ID); delErr != nil {
			if gcalendar.IsNotFound(delErr) {
				uc.l.Warnf(ctx, "deleteEvents: event %s already gone", ev.ID)
				missing++
				continue
			}
			return deleted, missing, fmt.Errorf("%w: delete event %s: %v", vacation.ErrCalendarFailed, ev.ID, delErr)
		}
		deleted++
	}
	return deleted, missing, nil
}

// rollbackEvents best-effort deletes events created before a failure.
func (uc *implUseCase) rollbackEvents(ctx context.Context, events []model.CalendarEvent) {
	for _, ev := range events {
		if err := uc.calendar.DeleteEvent(ctx, ev.CalendarID, ev.ID); err != nil && !gcalendar.IsNotFound(err) {
			uc.l.Errorf(ctx, "rollbackEvents: failed to delete event %s: %v", ev.ID, err)
		}
	}
}

// saveHistory persists the stacks, logging instead of failing the operation
// when the write goes wrong.
func (uc *implUseCase) saveHistory(ctx context.Context) {
	if err := uc.store.Save(); err != nil {
		uc.l.Errorf(ctx, "saveHistory: %v", err)
	}
}

// sendNotification emails a summary of what happened when notifications are
// enabled for the request. Failures are logged, never fatal.
func (uc *implUseCase) sendNotification(ctx context.Context, snapshot *model.ScheduleSnapshot, subject string, events []model.CalendarEvent) bool {
	if uc.mailer == nil || snapshot == nil || !snapshot.SendEmail || snapshot.NotificationEmail == "" {
		return false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", subject)
	fmt.Fprintf(&sb, "Event: %s\n", snapshot.EventName)
	fmt.Fprintf(&sb, "Calendar: %s\n", snapshot.CalendarID)
	fmt.Fprintf(&sb, "Days affected: %d\n\n", len(events))
	for _, ev := range events {
		fmt.Fprintf(&sb, "  %s  %s - %s\n",
			ev.StartTime.Format("2006-01-02"),
			ev.StartTime.Format("15:04"),
			ev.EffectiveEnd().Format("15:04"))
	}

	err := uc.mailer.Send(ctx, gmailer.SendRequest{
		To:      snapshot.NotificationEmail,
		Subject: subject,
		Body:    sb.String(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "sendNotification: %v", err)
		return false
	}
	return true
}
