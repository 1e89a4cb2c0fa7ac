package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	ucAccount "github.com/BruksfildServices01/champa-store/internal/usecase/account"
)

type SetupHandler struct {
	setup *ucAccount.Setup
}

func NewSetupHandler(setup *ucAccount.Setup) *SetupHandler {
	return &SetupHandler{setup: setup}
}

type FirstAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (h *SetupHandler) Status(c *gin.Context) {
	st, err := h.setup.Status(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *SetupHandler) FirstAdmin(c *gin.Context) {
	var req FirstAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.setup.CreateFirstAdmin(c.Request.Context(), req.Username, req.Password, req.Phone)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(u))
}
