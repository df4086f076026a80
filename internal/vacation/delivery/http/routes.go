package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dtg01100/vacation-calendar-updater/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. rg is the
// versioned API group (/api/v1). All routes share the rate limiter.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	vacations := rg.Group("/vacations")
	{
		vacations.POST("", mw.RateLimit(), h.Create)
		vacations.POST("/import", mw.RateLimit(), h.Import)
		vacations.POST("/undo", mw.RateLimit(), h.Undo)
		vacations.POST("/redo", mw.RateLimit(), h.Redo)
		vacations.GET("/history", mw.RateLimit(), h.History)
		vacations.GET("/history/:id", mw.RateLimit(), h.HistoryDetail)
		vacations.GET("/batches", mw.RateLimit(), h.ListBatches)
		vacations.GET("/batches/:id", mw.RateLimit(), h.BatchDetail)
		vacations.PUT("/batches/:id", mw.RateLimit(), h.Update)
		vacations.DELETE("/batches/:id", mw.RateLimit(), h.Delete)
		vacations.GET("/batches/:id/ics", mw.RateLimit(), h.ExportICS)
	}

	calendars := rg.Group("/calendars")
	{
		calendars.GET("", mw.RateLimit(), h.ListCalendars)
	}
}
