package http

import (
	"fmt"

	"github.com/dtg01100/vacation-calendar-updater/internal/history"
	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/schedule"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	"github.com/dtg01100/vacation-calendar-updater/pkg/response"
)

// scheduleReq is the JSON body describing a vacation schedule. Omitted fields
// stay at their zero value; the use case fills them from the configured
// defaults (and, on update, from the batch's previous schedule) before
// validation, which reports everything still missing in one response.
type scheduleReq struct {
	EventName         string          `json:"event_name"`
	NotificationEmail string          `json:"notification_email"`
	CalendarID        string          `json:"calendar_id"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	StartTime         string          `json:"start_time"`
	DayLengthHours    float64         `json:"day_length_hours"`
	Weekdays          map[string]bool `json:"weekdays"`
	SendEmail         bool            `json:"send_email"`
}

func (r scheduleReq) toSchedule() (schedule.Request, error) {
	req := schedule.Request{
		EventName:         r.EventName,
		NotificationEmail: r.NotificationEmail,
		CalendarID:        r.CalendarID,
		DayLengthHours:    r.DayLengthHours,
		Weekdays:          r.Weekdays,
		SendEmail:         r.SendEmail,
	}
	var err error
	if r.StartDate != "" {
		if req.StartDate, err = schedule.ParseDate(r.StartDate); err != nil {
			return schedule.Request{}, fmt.Errorf("start_date: %w", err)
		}
	}
	if r.EndDate != "" {
		if req.EndDate, err = schedule.ParseDate(r.EndDate); err != nil {
			return schedule.Request{}, fmt.Errorf("end_date: %w", err)
		}
	}
	if r.StartTime != "" {
		if req.StartClock, err = schedule.ParseClock(r.StartTime); err != nil {
			return schedule.Request{}, fmt.Errorf("start_time: %w", err)
		}
	}
	return req, nil
}

type createReq struct {
	scheduleReq
}

func (r createReq) toInput() (vacation.CreateInput, error) {
	sched, err := r.toSchedule()
	if err != nil {
		return vacation.CreateInput{}, err
	}
	return vacation.CreateInput{Schedule: sched}, nil
}

type updateReq struct {
	scheduleReq
	BatchID string `json:"-"`
}

func (r updateReq) toInput() (vacation.UpdateInput, error) {
	sched, err := r.toSchedule()
	if err != nil {
		return vacation.UpdateInput{}, err
	}
	return vacation.UpdateInput{BatchID: r.BatchID, Schedule: sched}, nil
}

type importReq struct {
	CalendarID string `json:"calendar_id"`
	From       string `json:"from" binding:"required"`
	To         string `json:"to" binding:"required"`
}

func (r importReq) toInput() (vacation.ImportInput, error) {
	from, err := schedule.ParseDate(r.From)
	if err != nil {
		return vacation.ImportInput{}, fmt.Errorf("from: %w", err)
	}
	to, err := schedule.ParseDate(r.To)
	if err != nil {
		return vacation.ImportInput{}, fmt.Errorf("to: %w", err)
	}
	return vacation.ImportInput{
		CalendarID: r.CalendarID,
		From:       from,
		To:         to.AddDate(0, 0, 1), // include the whole "to" day
	}, nil
}

type eventResp struct {
	ID        string            `json:"event_id"`
	Summary   string            `json:"event_name"`
	StartTime response.DateTime `json:"start_time"`
	EndTime   response.DateTime `json:"end_time"`
	AllDay    bool              `json:"all_day,omitempty"`
}

type batchResp struct {
	ID          string      `json:"batch_id"`
	CalendarID  string      `json:"calendar_id"`
	Description string      `json:"description"`
	EventCount  int         `json:"event_count"`
	Events      []eventResp `json:"events"`
}

func newBatchResp(b model.Batch) batchResp {
	events := make([]eventResp, 0, len(b.Events))
	for _, ev := range b.Events {
		events = append(events, eventResp{
			ID:        ev.ID,
			Summary:   ev.Summary,
			StartTime: response.DateTime(ev.StartTime),
			EndTime:   response.DateTime(ev.EffectiveEnd()),
			AllDay:    ev.AllDay,
		})
	}
	return batchResp{
		ID:          b.ID,
		CalendarID:  b.CalendarID,
		Description: b.Description,
		EventCount:  b.EventCount(),
		Events:      events,
	}
}

type createResp struct {
	Batch       batchResp `json:"batch"`
	OperationID string    `json:"operation_id"`
	EmailSent   bool      `json:"email_sent"`
}

func (h *handler) newCreateResp(out vacation.CreateOutput) createResp {
	return createResp{
		Batch:       newBatchResp(out.Batch),
		OperationID: out.OperationID,
		EmailSent:   out.EmailSent,
	}
}

type updateResp struct {
	Batch        batchResp `json:"batch"`
	OperationID  string    `json:"operation_id"`
	DeletedCount int       `json:"deleted_count"`
}

func (h *handler) newUpdateResp(out vacation.UpdateOutput) updateResp {
	return updateResp{
		Batch:        newBatchResp(out.Batch),
		OperationID:  out.OperationID,
		DeletedCount: out.DeletedCount,
	}
}

type deleteResp struct {
	BatchID      string `json:"batch_id"`
	Description  string `json:"description"`
	DeletedCount int    `json:"deleted_count"`
	MissingCount int    `json:"missing_count"`
	OperationID  string `json:"operation_id"`
	EmailSent    bool   `json:"email_sent"`
}

func (h *handler) newDeleteResp(out vacation.DeleteOutput) deleteResp {
	return deleteResp{
		BatchID:      out.BatchID,
		Description:  out.Description,
		DeletedCount: out.DeletedCount,
		MissingCount: out.MissingCount,
		OperationID:  out.OperationID,
		EmailSent:    out.EmailSent,
	}
}

type importResp struct {
	Batches     []batchResp `json:"batches"`
	EventCount  int         `json:"event_count"`
	OperationID string      `json:"operation_id"`
}

func (h *handler) newImportResp(out vacation.ImportOutput) importResp {
	batches := make([]batchResp, 0, len(out.Batches))
	for _, b := range out.Batches {
		batches = append(batches, newBatchResp(b))
	}
	return importResp{
		Batches:     batches,
		EventCount:  out.EventCount,
		OperationID: out.OperationID,
	}
}

type listBatchesResp struct {
	Batches []batchResp `json:"batches"`
	Count   int         `json:"count"`
}

func (h *handler) newListBatchesResp(out vacation.ListBatchesOutput) listBatchesResp {
	batches := make([]batchResp, 0, len(out.Batches))
	for _, b := range out.Batches {
		batches = append(batches, newBatchResp(b))
	}
	return listBatchesResp{Batches: batches, Count: len(batches)}
}

type historyStepResp struct {
	OperationID   string `json:"operation_id"`
	Type          string `json:"operation_type"`
	Description   string `json:"description"`
	EventsAdded   int    `json:"events_added"`
	EventsRemoved int    `json:"events_removed"`
}

func (h *handler) newHistoryStepResp(out vacation.HistoryStepOutput) historyStepResp {
	return historyStepResp{
		OperationID:   out.Operation.ID,
		Type:          string(out.Operation.Type),
		Description:   out.Operation.Description,
		EventsAdded:   out.EventsAdded,
		EventsRemoved: out.EventsRemove,
	}
}

type operationResp struct {
	ID             string            `json:"operation_id"`
	Type           string            `json:"operation_type"`
	Description    string            `json:"description"`
	AffectedEvents int               `json:"affected_events"`
	CreatedAt      response.DateTime `json:"created_at"`
}

func newOperationResp(op model.Operation) operationResp {
	return operationResp{
		ID:             op.ID,
		Type:           string(op.Type),
		Description:    op.Description,
		AffectedEvents: len(op.AffectedEventIDs),
		CreatedAt:      response.DateTime(op.CreatedAt),
	}
}

type historyResp struct {
	Operations []operationResp `json:"operations"`
	Stats      history.Stats   `json:"stats"`
	CanUndo    bool            `json:"can_undo"`
	CanRedo    bool            `json:"can_redo"`
}

func (h *handler) newHistoryResp(out vacation.ListHistoryOutput) historyResp {
	ops := make([]operationResp, 0, len(out.Operations))
	for _, op := range out.Operations {
		ops = append(ops, newOperationResp(op))
	}
	return historyResp{
		Operations: ops,
		Stats:      out.Stats,
		CanUndo:    out.CanUndo,
		CanRedo:    out.CanRedo,
	}
}

type historyDetailResp struct {
	Operation operationResp `json:"operation"`
	Events    []eventResp   `json:"events"`
	BatchIDs  []string      `json:"batch_ids"`
}

func (h *handler) newHistoryDetailResp(out vacation.HistoryDetailOutput) historyDetailResp {
	op := out.Operation
	events := make([]eventResp, 0, len(op.EventSnapshots))
	for _, ev := range op.EventSnapshots {
		events = append(events, eventResp{
			ID:        ev.ID,
			Summary:   ev.Summary,
			StartTime: response.DateTime(ev.StartTime),
			EndTime:   response.DateTime(ev.EffectiveEnd()),
			AllDay:    ev.AllDay,
		})
	}
	return historyDetailResp{
		Operation: newOperationResp(op),
		Events:    events,
		BatchIDs:  op.BatchIDs,
	}
}

type calendarResp struct {
	ID         string `json:"calendar_id"`
	Summary    string `json:"summary"`
	AccessRole string `json:"access_role"`
	Primary    bool   `json:"primary"`
}

type listCalendarsResp struct {
	Calendars []calendarResp `json:"calendars"`
	Count     int            `json:"count"`
}

func (h *handler) newListCalendarsResp(out vacation.ListCalendarsOutput) listCalendarsResp {
	calendars := make([]calendarResp, 0, len(out.Calendars))
	for _, cal := range out.Calendars {
		calendars = append(calendars, calendarResp{
			ID:         cal.ID,
			Summary:    cal.Summary,
			AccessRole: cal.AccessRole,
			Primary:    cal.Primary,
		})
	}
	return listCalendarsResp{Calendars: calendars, Count: len(calendars)}
}
