// Package history keeps the undo/redo operation stacks and persists them to
// a JSON file so history survives restarts.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
)

// DefaultMaxHistory bounds how many operations the undo stack retains.
const DefaultMaxHistory = 50

const schemaVersion = 2

// Store holds the dual undo/redo stacks. Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	path       string
	maxHistory int
	undo       []model.Operation
	redo       []model.Operation
}

// NewStore creates a Store persisting to path. maxHistory <= 0 uses
// DefaultMaxHistory.
func NewStore(path string, maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Store{
		path:       path,
		maxHistory: maxHistory,
	}
}

// Record appends a new operation to the undo stack, assigning it an ID and
// timestamp. Any redoable operations are discarded, and the stack is trimmed
// to the history limit. Returns the operation ID.
func (s *Store) Record(op model.Operation) (string, error) {
	if !op.Type.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperationType, op.Type)
	}
	if len(op.AffectedEventIDs) == 0 {
		return "", ErrNoAffectedEvents
	}
	if len(op.EventSnapshots) == 0 {
		return "", ErrNoSnapshots
	}

	op.ID = uuid.New().String()
	op.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = append(s.undo, op)
	s.redo = nil
	if len(s.undo) > s.maxHistory {
		s.undo = s.undo[len(s.undo)-s.maxHistory:]
	}

	return op.ID, nil
}

// Undo pops the most recent operation off the undo stack onto the redo stack.
func (s *Store) Undo() (model.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return model.Operation{}, false
	}
	op := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, op)
	return op, true
}

// Redo pops the most recently undone operation back onto the undo stack.
func (s *Store) Redo() (model.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return model.Operation{}, false
	}
	op := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, op)
	return op, true
}

// ReplaceUndoTop overwrites the most recent undoable operation. Used after a
// redo recreates calendar events under new IDs.
func (s *Store) ReplaceUndoTop(op model.Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	s.undo[len(s.undo)-1] = op
	return true
}

// ReplaceRedoTop overwrites the most recently undone operation. Used after an
// undo recreates calendar events under new IDs.
func (s *Store) ReplaceRedoTop(op model.Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	s.redo[len(s.redo)-1] = op
	return true
}

// CanUndo reports whether an undoable operation exists.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redoable operation exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Operations returns the undo stack, most recent last.
func (s *Store) Operations() []model.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Operation, len(s.undo))
	copy(out, s.undo)
	return out
}

// Find returns the operation with the given ID from either stack.
func (s *Store) Find(operationID string) (model.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range s.undo {
		if op.ID == operationID {
			return op, true
		}
	}
	for _, op := range s.redo {
		if op.ID == operationID {
			return op, true
		}
	}
	return model.Operation{}, false
}

// Prune drops undoable operations older than the given age and returns how
// many were removed.
func (s *Store) Prune(age time.Duration) int {
	cutoff := time.Now().Add(-age)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.undo[:0]
	for _, op := range s.undo {
		if op.CreatedAt.After(cutoff) {
			kept = append(kept, op)
		}
	}
	removed := len(s.undo) - len(kept)
	s.undo = kept
	return removed
}

// Stats summarizes both stacks.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		UndoableOperations: len(s.undo),
		RedoableOperations: len(s.redo),
	}
	for _, op := range s.undo {
		stats.UndoableEvents += len(op.EventSnapshots)
		stats.TotalEvents += len(op.EventSnapshots)
	}
	for _, op := range s.redo {
		stats.TotalEvents += len(op.EventSnapshots)
	}
	return stats
}

// Save writes the stacks to disk, copying any existing file to a .backup
// first so a failed write never destroys the previous history.
func (s *Store) Save() error {
	// The lock covers the file writes too, so concurrent saves cannot
	// interleave the backup copy with the main write.
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := struct {
		Version    int               `json:"version"`
		MaxHistory int               `json:"max_history"`
		UndoStack  []model.Operation `json:"undo_stack"`
		RedoStack  []model.Operation `json:"redo_stack"`
	}{
		Version:    schemaVersion,
		MaxHistory: s.maxHistory,
		UndoStack:  s.undo,
		RedoStack:  s.redo,
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	if existing, readErr := os.ReadFile(s.path); readErr == nil {
		// Best effort; saving without a backup beats not saving.
		_ = os.WriteFile(s.path+".backup", existing, 0o644)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Load reads the history file, migrating version 1 files to the dual-stack
// model. Missing or corrupt files load as empty history; individually corrupt
// entries are skipped. Returns the number of operations loaded.
func (s *Store) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}

	var schema fileSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return 0
	}

	version := schema.Version
	if version == 0 {
		version = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = nil
	s.redo = nil

	switch version {
	case 1:
		s.migrateV1(schema.Batches)
	case schemaVersion:
		for _, raw := range schema.UndoStack {
			if op, ok := decodeOperation(raw); ok {
				s.undo = append(s.undo, op)
			}
		}
		for _, raw := range schema.RedoStack {
			if op, ok := decodeOperation(raw); ok {
				s.redo = append(s.redo, op)
			}
		}
		// Old tools may still append v1 batches next to the stacks.
		s.migrateV1(schema.Batches)
	default:
		return 0
	}

	if schema.MaxHistory > 0 {
		s.maxHistory = schema.MaxHistory
	}
	if len(s.undo) > s.maxHistory {
		s.undo = s.undo[len(s.undo)-s.maxHistory:]
	}

	return len(s.undo) + len(s.redo)
}

// migrateV1 converts legacy batches into operations. Batches were always
// creations; batches marked undone seed the redo stack.
func (s *Store) migrateV1(batches []json.RawMessage) {
	for _, raw := range batches {
		var b legacyBatch
		if err := json.Unmarshal(raw, &b); err != nil || b.BatchID == "" || len(b.Events) == 0 {
			continue
		}

		events := make([]model.CalendarEvent, len(b.Events))
		ids := make([]string, len(b.Events))
		for i, ev := range b.Events {
			events[i] = ev.toModel()
			ids[i] = ev.EventID
		}

		op := model.Operation{
			ID:               b.BatchID,
			Type:             model.OperationCreate,
			Description:      b.Description,
			AffectedEventIDs: ids,
			EventSnapshots:   events,
			CreatedAt:        b.CreatedAt.Time,
		}

		if b.IsUndone {
			s.redo = append([]model.Operation{op}, s.redo...)
		} else {
			s.undo = append(s.undo, op)
		}
	}
}

func decodeOperation(raw json.RawMessage) (model.Operation, bool) {
	var op model.Operation
	if err := json.Unmarshal(raw, &op); err != nil {
		return model.Operation{}, false
	}
	if op.ID == "" || !op.Type.Valid() {
		return model.Operation{}, false
	}
	return op, true
}
