package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtg01100/vacation-calendar-updater/internal/middleware"
	"github.com/dtg01100/vacation-calendar-updater/internal/model"
	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// mockUseCase returns canned outputs per method.
type mockUseCase struct {
	createOut    vacation.CreateOutput
	createErr    error
	createCalled bool
	detailErr    error
	undoErr      error
	historyOut   vacation.HistoryDetailOutput
	historyErr   error
	exportOut    vacation.ExportICSOutput
	exportErr    error
}

func (m *mockUseCase) Create(ctx context.Context, input vacation.CreateInput) (vacation.CreateOutput, error) {
	m.createCalled = true
	return m.createOut, m.createErr
}

func (m *mockUseCase) Update(ctx context.Context, input vacation.UpdateInput) (vacation.UpdateOutput, error) {
	return vacation.UpdateOutput{}, nil
}

func (m *mockUseCase) Delete(ctx context.Context, batchID string) (vacation.DeleteOutput, error) {
	return vacation.DeleteOutput{BatchID: batchID}, nil
}

func (m *mockUseCase) Import(ctx context.Context, input vacation.ImportInput) (vacation.ImportOutput, error) {
	return vacation.ImportOutput{}, nil
}

func (m *mockUseCase) Undo(ctx context.Context) (vacation.HistoryStepOutput, error) {
	return vacation.HistoryStepOutput{}, m.undoErr
}

func (m *mockUseCase) Redo(ctx context.Context) (vacation.HistoryStepOutput, error) {
	return vacation.HistoryStepOutput{}, nil
}

func (m *mockUseCase) ListBatches(ctx context.Context) (vacation.ListBatchesOutput, error) {
	return vacation.ListBatchesOutput{}, nil
}

func (m *mockUseCase) BatchDetail(ctx context.Context, batchID string) (vacation.BatchDetailOutput, error) {
	if m.detailErr != nil {
		return vacation.BatchDetailOutput{}, m.detailErr
	}
	return vacation.BatchDetailOutput{Batch: model.Batch{ID: batchID}}, nil
}

func (m *mockUseCase) ListHistory(ctx context.Context) (vacation.ListHistoryOutput, error) {
	return vacation.ListHistoryOutput{}, nil
}

func (m *mockUseCase) HistoryDetail(ctx context.Context, operationID string) (vacation.HistoryDetailOutput, error) {
	return m.historyOut, m.historyErr
}

func (m *mockUseCase) ExportICS(ctx context.Context, batchID string) (vacation.ExportICSOutput, error) {
	return m.exportOut, m.exportErr
}

func (m *mockUseCase) ListCalendars(ctx context.Context) (vacation.ListCalendarsOutput, error) {
	return vacation.ListCalendarsOutput{}, nil
}

func newTestRouter(uc vacation.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&mockLogger{}, uc)
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(&mockLogger{}, 0))
	return r
}

func createBody() string {
	return `{
		"event_name": "Summer Vacation",
		"start_date": "2024-07-01",
		"end_date": "2024-07-14",
		"start_time": "09:00",
		"day_length_hours": 8,
		"weekdays": {"monday": true, "friday": true}
	}`
}

func TestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockUseCase{
			createOut: vacation.CreateOutput{
				Batch: model.Batch{
					ID:          "batch-1",
					CalendarID:  "primary",
					Description: "Summer Vacation (2024-07-01 - 2024-07-12)",
					Events: []model.CalendarEvent{
						{ID: "ev-1", Summary: "Summer Vacation", StartTime: time.Now(), EndTime: time.Now().Add(8 * time.Hour)},
					},
				},
				OperationID: "op-1",
			},
		}
		r := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations", strings.NewReader(createBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			ErrorCode int `json:"error_code"`
			Data      struct {
				Batch struct {
					ID         string `json:"batch_id"`
					EventCount int    `json:"event_count"`
				} `json:"batch"`
				OperationID string `json:"operation_id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if resp.Data.Batch.ID != "batch-1" || resp.Data.OperationID != "op-1" {
			t.Errorf("unexpected response: %+v", resp.Data)
		}
	})

	t.Run("omitted fields reach schedule validation", func(t *testing.T) {
		// Binding must not reject a sparse body; the use case collects every
		// violation left after defaults are applied.
		uc := &mockUseCase{
			createErr: &vacation.ValidationError{Violations: []string{
				"select at least one weekday",
				"day length must be between 0 and 24 hours",
			}},
		}
		r := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations",
			strings.NewReader(`{"event_name": "X", "start_date": "2024-07-01", "end_date": "2024-07-05"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if !uc.createCalled {
			t.Fatal("expected the request to reach the use case")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "weekday") || !strings.Contains(body, "day length") {
			t.Errorf("expected all violations in body, got %s", body)
		}
	})

	t.Run("unparseable date", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{})

		body := strings.Replace(createBody(), "2024-07-01", "soon", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation violations map to 400", func(t *testing.T) {
		uc := &mockUseCase{
			createErr: &vacation.ValidationError{Violations: []string{"event name is required"}},
		}
		r := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations", strings.NewReader(createBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "event name is required") {
			t.Errorf("expected violation in body, got %s", w.Body.String())
		}
	})
}

func TestHandler_BatchDetail(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{detailErr: vacation.ErrBatchNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations/batches/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHandler_HistoryDetail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockUseCase{
			historyOut: vacation.HistoryDetailOutput{
				Operation: model.Operation{
					ID:               "op-1",
					Type:             model.OperationCreate,
					Description:      "Summer Vacation (2024-07-01 - 2024-07-12)",
					AffectedEventIDs: []string{"ev-1"},
					EventSnapshots: []model.CalendarEvent{
						{ID: "ev-1", Summary: "Summer Vacation", StartTime: time.Now(), EndTime: time.Now().Add(8 * time.Hour)},
					},
					CreatedAt: time.Now(),
				},
			},
		}
		r := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations/history/op-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data struct {
				Operation struct {
					ID   string `json:"operation_id"`
					Type string `json:"operation_type"`
				} `json:"operation"`
				Events []json.RawMessage `json:"events"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if resp.Data.Operation.ID != "op-1" || resp.Data.Operation.Type != "create" {
			t.Errorf("unexpected operation: %+v", resp.Data.Operation)
		}
		if len(resp.Data.Events) != 1 {
			t.Errorf("expected 1 event snapshot, got %d", len(resp.Data.Events))
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{historyErr: vacation.ErrOperationNotFound})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations/history/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHandler_Undo(t *testing.T) {
	t.Run("empty stack maps to 409", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{undoErr: vacation.ErrNothingToUndo})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/vacations/undo", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})
}

func TestHandler_ExportICS(t *testing.T) {
	uc := &mockUseCase{
		exportOut: vacation.ExportICSOutput{
			Filename: "Summer-Vacation.ics",
			Body:     "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		},
	}
	r := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacations/batches/batch-1/ics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Summer-Vacation.ics") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected an iCalendar body")
	}
}
