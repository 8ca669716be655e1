package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvs DashboardServicer
}

func NewDashboardHandler(dashboardSvs DashboardServicer) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvs: dashboardSvs,
	}
}

// Show GET RouteGroup + DashboardRoute.
func (d *DashboardHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := d.dashboardSvs.Summary(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusServiceUnavailable, errDashboardUnavailable).SetType(gin.ErrorTypePublic)
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newDashboardResponse(summary))
}
