package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/httpresp"
	ucDashboard "github.com/BruksfildServices01/champa-store/internal/usecase/dashboard"
)

type DashboardHandler struct {
	overview *ucDashboard.Overview
}

func NewDashboardHandler(overview *ucDashboard.Overview) *DashboardHandler {
	return &DashboardHandler{overview: overview}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	out, err := h.overview.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}
