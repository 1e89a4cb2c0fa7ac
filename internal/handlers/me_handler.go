package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe serves both /api/me and /api/admin/me; the route decides which
// gate runs first.
func (h *MeHandler) GetMe(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		httperr.Abort(c, httperr.ErrBusiness(httperr.CodeUnauthenticated))
		return
	}

	c.JSON(http.StatusOK, toUserDTO(u))
}
