package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	ucAccount "github.com/BruksfildServices01/champa-store/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	list        *ucAccount.ListUsers
	delete      *ucAccount.DeleteUser
	promote     *ucAccount.PromoteCustomer
	createAdmin *ucAccount.CreateAdmin
}

func NewUserHandler(
	list *ucAccount.ListUsers,
	del *ucAccount.DeleteUser,
	promote *ucAccount.PromoteCustomer,
	createAdmin *ucAccount.CreateAdmin,
) *UserHandler {
	return &UserHandler{
		list:        list,
		delete:      del,
		promote:     promote,
		createAdmin: createAdmin,
	}
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// ======================================================
// CUSTOMERS
// ======================================================

func (h *UserHandler) ListCustomers(c *gin.Context) {
	h.listByRole(c, domain.RoleCustomer)
}

func (h *UserHandler) DeleteCustomer(c *gin.Context) {
	h.deleteByRole(c, domain.RoleCustomer)
}

func (h *UserHandler) PromoteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.promote.Execute(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(u))
}

// ======================================================
// ADMINS
// ======================================================

func (h *UserHandler) ListAdmins(c *gin.Context) {
	h.listByRole(c, domain.RoleAdmin)
}

func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.createAdmin.Execute(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		req.Username,
		req.Password,
		req.Phone,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(u))
}

func (h *UserHandler) DeleteAdmin(c *gin.Context) {
	h.deleteByRole(c, domain.RoleAdmin)
}

// ======================================================
// SHARED
// ======================================================

func (h *UserHandler) listByRole(c *gin.Context, role domain.Role) {
	users, err := h.list.Execute(c.Request.Context(), role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTOs(users))
}

func (h *UserHandler) deleteByRole(c *gin.Context, role domain.Role) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUserID(c), id, role); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
