package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
)

// fileSchema is the on-disk shape. Version 2 is the dual-stack format; the
// legacy version 1 format carried a flat batch list and is migrated on load.
type fileSchema struct {
	Version    int               `json:"version"`
	MaxHistory int               `json:"max_history,omitempty"`
	UndoStack  []json.RawMessage `json:"undo_stack,omitempty"`
	RedoStack  []json.RawMessage `json:"redo_stack,omitempty"`
	Batches    []json.RawMessage `json:"batches,omitempty"`
}

// jsonTime accepts RFC3339 as well as the zone-less ISO timestamps older
// history files contain.
type jsonTime struct {
	time.Time
}

func (t *jsonTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// legacyBatch is a version 1 history entry.
type legacyBatch struct {
	BatchID     string        `json:"batch_id"`
	CreatedAt   jsonTime      `json:"created_at"`
	Events      []legacyEvent `json:"events"`
	Description string        `json:"description"`
	IsUndone    bool          `json:"is_undone"`
}

// legacyEvent is a version 1 event snapshot.
type legacyEvent struct {
	EventID    string                  `json:"event_id"`
	CalendarID string                  `json:"calendar_id"`
	EventName  string                  `json:"event_name"`
	StartTime  jsonTime                `json:"start_time"`
	EndTime    jsonTime                `json:"end_time"`
	CreatedAt  jsonTime                `json:"created_at"`
	BatchID    string                  `json:"batch_id"`
	Snapshot   *model.ScheduleSnapshot `json:"request_snapshot,omitempty"`
}

func (e legacyEvent) toModel() model.CalendarEvent {
	return model.CalendarEvent{
		ID:         e.EventID,
		CalendarID: e.CalendarID,
		Summary:    e.EventName,
		StartTime:  e.StartTime.Time,
		EndTime:    e.EndTime.Time,
		CreatedAt:  e.CreatedAt.Time,
		BatchID:    e.BatchID,
		Snapshot:   e.Snapshot,
	}
}

// Stats summarizes the history contents.
type Stats struct {
	UndoableOperations int `json:"undoable_operations"`
	RedoableOperations int `json:"redoable_operations"`
	UndoableEvents     int `json:"undoable_events"`
	TotalEvents        int `json:"total_events"`
}
