package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtg01100/vacation-calendar-updater/pkg/response"
)

// Create godoc
// @Summary     Create a vacation batch
// @Description Expands a recurring schedule into calendar events and records the batch on the history stack.
// @Tags        Vacation
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Schedule request"
// @Success     200 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request - invalid schedule"
// @Failure     502 {object} response.Resp "Bad Gateway - calendar unavailable"
// @Router      /api/v1/vacations [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Create(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// ListBatches godoc
// @Summary     List vacation batches
// @Description Returns the batches currently managed by the service.
// @Tags        Vacation
// @Produce     json
// @Success     200 {object} listBatchesResp
// @Router      /api/v1/vacations/batches [GET]
func (h *handler) ListBatches(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListBatches(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListBatches: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListBatchesResp(output))
}

// BatchDetail godoc
// @Summary     Get batch detail
// @Description Returns a single batch and its events.
// @Tags        Vacation
// @Produce     json
// @Param       id path string true "Batch ID"
// @Success     200 {object} batchResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/vacations/batches/{id} [GET]
func (h *handler) BatchDetail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingBatchID, nil)
		return
	}

	output, err := h.uc.BatchDetail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.BatchDetail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newBatchResp(output.Batch))
}

// Update godoc
// @Summary     Update a vacation batch
// @Description Replaces a batch's events with a freshly built schedule. The change is undoable.
// @Tags        Vacation
// @Accept      json
// @Produce     json
// @Param       id   path string       true "Batch ID"
// @Param       body body scheduleReq true "New schedule"
// @Success     200 {object} updateResp
// @Failure     400 {object} response.Resp "Bad Request - invalid schedule"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/vacations/batches/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Update(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUpdateResp(output))
}

// Delete godoc
// @Summary     Delete a vacation batch
// @Description Removes all events of a batch from the calendar. Events already gone are tolerated.
// @Tags        Vacation
// @Produce     json
// @Param       id path string true "Batch ID"
// @Success     200 {object} deleteResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/vacations/batches/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingBatchID, nil)
		return
	}

	output, err := h.uc.Delete(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDeleteResp(output))
}

// Import godoc
// @Summary     Import existing calendar events
// @Description Fetches events for a date range and groups adjacent same-name events into batches.
// @Tags        Vacation
// @Accept      json
// @Produce     json
// @Param       body body importReq true "Import range"
// @Success     200 {object} importResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Bad Gateway - calendar unavailable"
// @Router      /api/v1/vacations/import [POST]
func (h *handler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processImportReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Import(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Import: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newImportResp(output))
}

// Undo godoc
// @Summary     Undo the last operation
// @Description Reverses the most recent create, update, delete or import.
// @Tags        History
// @Produce     json
// @Success     200 {object} historyStepResp
// @Failure     409 {object} response.Resp "Conflict - nothing to undo"
// @Router      /api/v1/vacations/undo [POST]
func (h *handler) Undo(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Undo(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Undo: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryStepResp(output))
}

// Redo godoc
// @Summary     Redo the last undone operation
// @Description Re-applies the most recently undone operation.
// @Tags        History
// @Produce     json
// @Success     200 {object} historyStepResp
// @Failure     409 {object} response.Resp "Conflict - nothing to redo"
// @Router      /api/v1/vacations/redo [POST]
func (h *handler) Redo(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Redo(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Redo: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryStepResp(output))
}

// History godoc
// @Summary     Operation history
// @Description Returns the recorded operations and undo/redo stack state.
// @Tags        History
// @Produce     json
// @Success     200 {object} historyResp
// @Router      /api/v1/vacations/history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListHistory(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListHistory: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// HistoryDetail godoc
// @Summary     Operation detail
// @Description Returns a single recorded operation with its event snapshots.
// @Tags        History
// @Produce     json
// @Param       id path string true "Operation ID"
// @Success     200 {object} historyDetailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/vacations/history/{id} [GET]
func (h *handler) HistoryDetail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingOperationID, nil)
		return
	}

	output, err := h.uc.HistoryDetail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.HistoryDetail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newHistoryDetailResp(output))
}

// ExportICS godoc
// @Summary     Export a batch as ICS
// @Description Renders a batch as an iCalendar document for download.
// @Tags        Vacation
// @Produce     text/calendar
// @Param       id path string true "Batch ID"
// @Success     200 {string} string "iCalendar document"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/vacations/batches/{id}/ics [GET]
func (h *handler) ExportICS(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingBatchID, nil)
		return
	}

	output, err := h.uc.ExportICS(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.ExportICS: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(output.Body))
}

// ListCalendars godoc
// @Summary     List writable calendars
// @Description Returns the calendars the configured account can write to.
// @Tags        Calendar
// @Produce     json
// @Success     200 {object} listCalendarsResp
// @Failure     502 {object} response.Resp "Bad Gateway - calendar unavailable"
// @Router      /api/v1/calendars [GET]
func (h *handler) ListCalendars(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ListCalendars(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListCalendars: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListCalendarsResp(output))
}
