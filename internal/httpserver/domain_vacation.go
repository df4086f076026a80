package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dtg01100/vacation-calendar-updater/internal/middleware"
	vacationHTTP "github.com/dtg01100/vacation-calendar-updater/internal/vacation/delivery/http"
)

// setupVacationDomain initializes the vacation domain and registers its
// routes.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase:      uc := mydomainUC.New(...)
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api, h, mw)
func (srv *HTTPServer) setupVacationDomain(ctx context.Context, api *gin.RouterGroup) error {
	mw := middleware.New(srv.l, srv.rateLimitPerMin)

	h := vacationHTTP.New(srv.l, srv.vacationUC)

	vacationHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Vacation domain registered")
	return nil
}
