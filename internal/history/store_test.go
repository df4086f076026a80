package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dtg01100/vacation-calendar-updater/internal/model"
)

func testOperation(summary string) model.Operation {
	return model.Operation{
		Type:             model.OperationCreate,
		Description:      summary,
		AffectedEventIDs: []string{"ev-1"},
		EventSnapshots: []model.CalendarEvent{
			{
				ID:         "ev-1",
				CalendarID: "primary",
				Summary:    summary,
				StartTime:  time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
				EndTime:    time.Date(2024, 7, 1, 17, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestStore_Record(t *testing.T) {
	t.Run("assigns id and timestamp", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

		id, err := s.Record(testOperation("Vacation"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" {
			t.Error("expected a generated operation ID")
		}

		ops := s.Operations()
		if len(ops) != 1 {
			t.Fatalf("expected 1 operation, got %d", len(ops))
		}
		if ops[0].ID != id {
			t.Errorf("expected operation ID %q, got %q", id, ops[0].ID)
		}
		if ops[0].CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("rejects invalid operations", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

		op := testOperation("Vacation")
		op.Type = "rename"
		if _, err := s.Record(op); !errors.Is(err, ErrInvalidOperationType) {
			t.Errorf("expected ErrInvalidOperationType, got %v", err)
		}

		op = testOperation("Vacation")
		op.AffectedEventIDs = nil
		if _, err := s.Record(op); !errors.Is(err, ErrNoAffectedEvents) {
			t.Errorf("expected ErrNoAffectedEvents, got %v", err)
		}

		op = testOperation("Vacation")
		op.EventSnapshots = nil
		if _, err := s.Record(op); !errors.Is(err, ErrNoSnapshots) {
			t.Errorf("expected ErrNoSnapshots, got %v", err)
		}
	})

	t.Run("trims to history limit", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "history.json"), 3)

		for i := 0; i < 5; i++ {
			if _, err := s.Record(testOperation("Vacation")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := len(s.Operations()); got != 3 {
			t.Errorf("expected 3 operations after trim, got %d", got)
		}
	})

	t.Run("clears redo stack", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

		if _, err := s.Record(testOperation("First")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := s.Undo(); !ok {
			t.Fatal("expected undo to succeed")
		}
		if !s.CanRedo() {
			t.Fatal("expected a redoable operation")
		}

		if _, err := s.Record(testOperation("Second")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.CanRedo() {
			t.Error("expected redo stack to be cleared by new operation")
		}
	})
}

func TestStore_UndoRedo(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

	if _, ok := s.Undo(); ok {
		t.Error("expected undo on empty store to fail")
	}
	if _, ok := s.Redo(); ok {
		t.Error("expected redo on empty store to fail")
	}

	if _, err := s.Record(testOperation("First")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Record(testOperation("Second")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	op, ok := s.Undo()
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if op.Description != "Second" {
		t.Errorf("expected most recent operation first, got %q", op.Description)
	}

	op, ok = s.Redo()
	if !ok {
		t.Fatal("expected redo to succeed")
	}
	if op.Description != "Second" {
		t.Errorf("expected redone operation %q, got %q", "Second", op.Description)
	}
	if s.CanRedo() {
		t.Error("expected empty redo stack after redo")
	}
	if got := len(s.Operations()); got != 2 {
		t.Errorf("expected 2 undoable operations, got %d", got)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		s := NewStore(path, 0)
		if _, err := s.Record(testOperation("First")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Record(testOperation("Second")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := s.Undo(); !ok {
			t.Fatal("expected undo to succeed")
		}
		if err := s.Save(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded := NewStore(path, 0)
		if got := loaded.Load(); got != 2 {
			t.Fatalf("expected 2 loaded operations, got %d", got)
		}
		if !loaded.CanUndo() || !loaded.CanRedo() {
			t.Error("expected both stacks to survive the round trip")
		}

		op, _ := loaded.Undo()
		if op.Description != "First" {
			t.Errorf("expected undoable operation %q, got %q", "First", op.Description)
		}
		op, _ = loaded.Redo()
		if op.Description != "First" {
			t.Errorf("expected redo to return %q, got %q", "First", op.Description)
		}
	})

	t.Run("missing file loads empty", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "missing.json"), 0)
		if got := s.Load(); got != 0 {
			t.Errorf("expected 0 operations, got %d", got)
		}
	})

	t.Run("corrupt file loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		s := NewStore(path, 0)
		if got := s.Load(); got != 0 {
			t.Errorf("expected 0 operations, got %d", got)
		}
	})

	t.Run("corrupt entries are skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		raw := `{
			"version": 2,
			"undo_stack": [
				{"operation_id": "", "operation_type": "create"},
				{
					"operation_id": "op-1",
					"operation_type": "create",
					"description": "Kept",
					"affected_event_ids": ["ev-1"],
					"event_snapshots": [{"event_id": "ev-1", "event_name": "Kept"}]
				}
			]
		}`
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}

		s := NewStore(path, 0)
		if got := s.Load(); got != 1 {
			t.Fatalf("expected 1 operation, got %d", got)
		}
		if ops := s.Operations(); ops[0].Description != "Kept" {
			t.Errorf("expected the valid entry to survive, got %q", ops[0].Description)
		}
	})

	t.Run("writes backup before overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		s := NewStore(path, 0)
		if _, err := s.Record(testOperation("First")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		original, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := s.Record(testOperation("Second")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		backup, err := os.ReadFile(path + ".backup")
		if err != nil {
			t.Fatalf("expected a backup file: %v", err)
		}
		if string(backup) != string(original) {
			t.Error("expected backup to hold the previous file contents")
		}
	})

	t.Run("restores max history", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		s := NewStore(path, 7)
		if _, err := s.Record(testOperation("First")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded := NewStore(path, 0)
		loaded.Load()
		if loaded.maxHistory != 7 {
			t.Errorf("expected max history 7, got %d", loaded.maxHistory)
		}
	})
}

func TestStore_LoadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	raw := `{
		"batches": [
			{
				"batch_id": "batch-1",
				"created_at": "2024-06-01T10:00:00.123456",
				"description": "Vacation (2024-07-01 - 2024-07-05)",
				"is_undone": false,
				"events": [
					{
						"event_id": "ev-1",
						"calendar_id": "primary",
						"event_name": "Vacation",
						"start_time": "2024-07-01T09:00:00",
						"end_time": "2024-07-01T17:00:00",
						"batch_id": "batch-1"
					}
				]
			},
			{
				"batch_id": "batch-2",
				"created_at": "2024-06-02T10:00:00Z",
				"description": "Conference",
				"is_undone": true,
				"events": [
					{
						"event_id": "ev-2",
						"event_name": "Conference",
						"start_time": "2024-08-01T09:00:00Z",
						"end_time": "2024-08-01T17:00:00Z"
					}
				]
			},
			{"batch_id": "", "events": []}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path, 0)
	if got := s.Load(); got != 2 {
		t.Fatalf("expected 2 migrated operations, got %d", got)
	}

	ops := s.Operations()
	if len(ops) != 1 {
		t.Fatalf("expected 1 undoable operation, got %d", len(ops))
	}
	op := ops[0]
	if op.ID != "batch-1" {
		t.Errorf("expected batch ID to carry over, got %q", op.ID)
	}
	if op.Type != model.OperationCreate {
		t.Errorf("expected migrated operations to be creations, got %q", op.Type)
	}
	if len(op.EventSnapshots) != 1 || op.EventSnapshots[0].Summary != "Vacation" {
		t.Errorf("unexpected migrated snapshots: %+v", op.EventSnapshots)
	}
	if op.EventSnapshots[0].StartTime.Hour() != 9 {
		t.Errorf("expected zone-less timestamp to parse, got %v", op.EventSnapshots[0].StartTime)
	}

	if !s.CanRedo() {
		t.Fatal("expected undone batch on the redo stack")
	}
	redone, _ := s.Redo()
	if redone.ID != "batch-2" {
		t.Errorf("expected redo to return batch-2, got %q", redone.ID)
	}
}

func TestStore_Prune(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

	old := testOperation("Old")
	old.ID = "op-old"
	old.CreatedAt = time.Now().Add(-72 * time.Hour)
	s.undo = append(s.undo, old)

	if _, err := s.Record(testOperation("Recent")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if removed := s.Prune(24 * time.Hour); removed != 1 {
		t.Errorf("expected 1 pruned operation, got %d", removed)
	}
	if got := len(s.Operations()); got != 1 {
		t.Errorf("expected 1 remaining operation, got %d", got)
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.json"), 0)

	op := testOperation("Vacation")
	op.AffectedEventIDs = []string{"ev-1", "ev-2"}
	op.EventSnapshots = append(op.EventSnapshots, model.CalendarEvent{ID: "ev-2", Summary: "Vacation"})
	if _, err := s.Record(op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Record(testOperation("Other")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Undo(); !ok {
		t.Fatal("expected undo to succeed")
	}

	stats := s.Stats()
	if stats.UndoableOperations != 1 {
		t.Errorf("expected 1 undoable operation, got %d", stats.UndoableOperations)
	}
	if stats.RedoableOperations != 1 {
		t.Errorf("expected 1 redoable operation, got %d", stats.RedoableOperations)
	}
	if stats.UndoableEvents != 2 {
		t.Errorf("expected 2 undoable events, got %d", stats.UndoableEvents)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("expected 3 total events, got %d", stats.TotalEvents)
	}
}

func TestStore_ConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewStore(path, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := s.Record(testOperation(fmt.Sprintf("Vacation %d", n))); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err := s.Save(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if err := s.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewStore(path, 0)
	if got := reloaded.Load(); got != 8 {
		t.Fatalf("expected 8 operations after concurrent saves, got %d", got)
	}
}

func TestStore_SaveSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	s := NewStore(path, 0)
	if _, err := s.Record(testOperation("Vacation")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var schema map[string]json.RawMessage
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}
	var version int
	if err := json.Unmarshal(schema["version"], &version); err != nil || version != 2 {
		t.Errorf("expected schema version 2, got %s", schema["version"])
	}
	if _, ok := schema["undo_stack"]; !ok {
		t.Error("expected undo_stack in saved file")
	}
}
