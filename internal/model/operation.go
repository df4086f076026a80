package model

import "time"

// OperationType identifies what a history operation did to the calendar.
type OperationType string

const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
	OperationImport OperationType = "import"
)

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	switch t {
	case OperationCreate, OperationUpdate, OperationDelete, OperationImport:
		return true
	}
	return false
}

// Operation is one entry on the undo/redo stacks. EventSnapshots always hold
// the events the operation produced or removed; update operations also carry
// the replaced events so undo can restore them.
type Operation struct {
	ID                string          `json:"operation_id"`
	Type              OperationType   `json:"operation_type"`
	Description       string          `json:"description"`
	AffectedEventIDs  []string        `json:"affected_event_ids"`
	EventSnapshots    []CalendarEvent `json:"event_snapshots"`
	OldEventSnapshots []CalendarEvent `json:"old_event_snapshots,omitempty"`
	BatchIDs          []string        `json:"batch_ids,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
