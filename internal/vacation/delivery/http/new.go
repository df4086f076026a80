package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dtg01100/vacation-calendar-updater/internal/vacation"
	"github.com/dtg01100/vacation-calendar-updater/pkg/log"
)

// Handler is the public interface for the vacation HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	ListBatches(c *gin.Context)
	BatchDetail(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Import(c *gin.Context)
	Undo(c *gin.Context)
	Redo(c *gin.Context)
	History(c *gin.Context)
	HistoryDetail(c *gin.Context)
	ExportICS(c *gin.Context)
	ListCalendars(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc vacation.UseCase
}

// New creates a new HTTP handler for the vacation domain.
func New(l log.Logger, uc vacation.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
