package model

import "time"

// CalendarEvent is a single calendar entry, either created by this service or
// fetched from Google Calendar during import. Immutable once constructed.
type CalendarEvent struct {
	ID         string            `json:"event_id"`
	CalendarID string            `json:"calendar_id"`
	Summary    string            `json:"event_name"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	AllDay     bool              `json:"all_day,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	BatchID    string            `json:"batch_id"`
	Snapshot   *ScheduleSnapshot `json:"request_snapshot,omitempty"`
}

// EffectiveEnd returns the event end, falling back to the start when the end
// is unknown. Gap computations always use this.
func (e CalendarEvent) EffectiveEnd() time.Time {
	if e.EndTime.IsZero() {
		return e.StartTime
	}
	return e.EndTime
}

// ScheduleSnapshot captures the schedule request that produced a batch of
// events, kept alongside history operations so an undone batch can be rebuilt.
type ScheduleSnapshot struct {
	EventName         string          `json:"event_name"`
	NotificationEmail string          `json:"notification_email"`
	CalendarID        string          `json:"calendar_id"`
	StartDate         string          `json:"start_date"` // 2006-01-02
	EndDate           string          `json:"end_date"`
	StartTime         string          `json:"start_time"` // 15:04
	DayLengthHours    float64         `json:"day_length_hours"`
	Weekdays          map[string]bool `json:"weekdays"`
	SendEmail         bool            `json:"send_email"`
}
