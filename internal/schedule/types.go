package schedule

import (
	"fmt"
	"time"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
)

// WeekdayOrder is the canonical weekday key order used in config, requests
// and persisted snapshots.
var WeekdayOrder = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock onto a calendar date.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// Request describes a recurring vacation schedule to expand into events.
type Request struct {
	EventName         string
	NotificationEmail string
	CalendarID        string
	StartDate         time.Time // date component only
	EndDate           time.Time
	StartClock        Clock
	DayLengthHours    float64
	Weekdays          map[string]bool
	SendEmail         bool
}

// Slot is one concrete event occurrence produced from a Request.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Snapshot converts the request into its persisted form.
func (r Request) Snapshot() *model.ScheduleSnapshot {
	weekdays := make(map[string]bool, len(r.Weekdays))
	for k, v := range r.Weekdays {
		weekdays[k] = v
	}
	return &model.ScheduleSnapshot{
		EventName:         r.EventName,
		NotificationEmail: r.NotificationEmail,
		CalendarID:        r.CalendarID,
		StartDate:         r.StartDate.Format("2006-01-02"),
		EndDate:           r.EndDate.Format("2006-01-02"),
		StartTime:         r.StartClock.String(),
		DayLengthHours:    r.DayLengthHours,
		Weekdays:          weekdays,
		SendEmail:         r.SendEmail,
	}
}

// FromSnapshot rebuilds a Request from its persisted form.
func FromSnapshot(s *model.ScheduleSnapshot) (Request, error) {
	if s == nil {
		return Request{}, fmt.Errorf("snapshot is nil")
	}
	startDate, err := ParseDate(s.StartDate)
	if err != nil {
		return Request{}, fmt.Errorf("snapshot start date: %w", err)
	}
	endDate, err := ParseDate(s.EndDate)
	if err != nil {
		return Request{}, fmt.Errorf("snapshot end date: %w", err)
	}
	clock, err := ParseClock(s.StartTime)
	if err != nil {
		return Request{}, fmt.Errorf("snapshot start time: %w", err)
	}
	return Request{
		EventName:         s.EventName,
		NotificationEmail: s.NotificationEmail,
		CalendarID:        s.CalendarID,
		StartDate:         startDate,
		EndDate:           endDate,
		StartClock:        clock,
		DayLengthHours:    s.DayLengthHours,
		Weekdays:          s.Weekdays,
		SendEmail:         s.SendEmail,
	}, nil
}
