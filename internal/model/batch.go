package model

import "time"

// Batch is a contiguous run of same-summary calendar events that are created,
// updated, deleted and undone as one unit.
//
// Invariant: all events share a summary and no two chronologically adjacent
// events are separated by more than the grouping gap threshold.
type Batch struct {
	ID          string          `json:"batch_id"`
	CalendarID  string          `json:"calendar_id"`
	Description string          `json:"description"`
	Events      []CalendarEvent `json:"events"`
}

// EventCount returns the number of member events.
func (b Batch) EventCount() int {
	return len(b.Events)
}

// Summary returns the shared event summary, or "" for an empty batch.
func (b Batch) Summary() string {
	if len(b.Events) == 0 {
		return ""
	}
	return b.Events[0].Summary
}

// StartTime returns the earliest event start in the batch.
func (b Batch) StartTime() time.Time {
	if len(b.Events) == 0 {
		return time.Time{}
	}
	min := b.Events[0].StartTime
	for _, ev := range b.Events[1:] {
		if ev.StartTime.Before(min) {
			min = ev.StartTime
		}
	}
	return min
}

// EndTime returns the latest event end in the batch.
func (b Batch) EndTime() time.Time {
	if len(b.Events) == 0 {
		return time.Time{}
	}
	max := b.Events[0].EffectiveEnd()
	for _, ev := range b.Events[1:] {
		if end := ev.EffectiveEnd(); end.After(max) {
			max = end
		}
	}
	return max
}
