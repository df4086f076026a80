// Package schedule expands a recurring vacation request into concrete event
// slots and validates requests before they reach the calendar.
package schedule

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var weekdayConst = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// enabledWeekdays returns the rrule weekday constants for the enabled
// weekdays, in canonical order.
func enabledWeekdays(weekdays map[string]bool) []rrule.Weekday {
	var out []rrule.Weekday
	for _, key := range WeekdayOrder {
		if weekdays[key] {
			out = append(out, weekdayConst[key])
		}
	}
	return out
}

// Build expands the request into one slot per enabled weekday between
// StartDate and EndDate inclusive. No enabled weekdays yields no slots.
func Build(req Request) ([]Slot, error) {
	byWeekday := enabledWeekdays(req.Weekdays)
	if len(byWeekday) == 0 {
		return nil, nil
	}

	start := req.StartClock.On(req.StartDate)
	until := req.StartClock.On(req.EndDate)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     until,
		Byweekday: byWeekday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	dayLength := time.Duration(req.DayLengthHours * float64(time.Hour))

	var slots []Slot
	for _, occurrence := range rule.All() {
		slots = append(slots, Slot{
			Start: occurrence,
			End:   occurrence.Add(dayLength),
		})
	}
	return slots, nil
}

// Validate checks the request and returns every violation found, so callers
// can surface all problems at once rather than one per round trip.
func Validate(req Request) []string {
	var violations []string

	if strings.TrimSpace(req.EventName) == "" {
		violations = append(violations, "event name is required")
	}
	if _, err := mail.ParseAddress(req.NotificationEmail); err != nil {
		violations = append(violations, "notification email is invalid")
	}
	if len(enabledWeekdays(req.Weekdays)) == 0 {
		violations = append(violations, "select at least one weekday")
	}
	if req.DayLengthHours <= 0 || req.DayLengthHours >= 24 {
		violations = append(violations, "day length must be between 0 and 24 hours")
	}
	if req.StartDate.IsZero() {
		violations = append(violations, "start date is required")
	}
	if req.EndDate.IsZero() {
		violations = append(violations, "end date is required")
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.StartDate.After(req.EndDate) {
		violations = append(violations, "start date must be on or before end date")
	}
	if strings.TrimSpace(req.CalendarID) == "" {
		violations = append(violations, "calendar selection is required")
	}

	if len(violations) == 0 {
		slots, err := Build(req)
		if err != nil || len(slots) == 0 {
			violations = append(violations, "no working days in range")
		}
	}

	return violations
}
