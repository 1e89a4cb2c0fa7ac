package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/metrics"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	ucAccount "github.com/BruksfildServices01/champa-store/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
	logout   *ucAccount.Logout
	metrics  *metrics.Metrics
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	logout *ucAccount.Logout,
	m *metrics.Metrics,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		logout:   logout,
		metrics:  m,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest takes a username or a phone number in Username. Phone is
// accepted as an alias for clients that send it separately.
type LoginRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// --------- Handlers ---------

// Register always creates a customer; admins come from setup or an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserDTO(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	loginID := req.Username
	if loginID == "" {
		loginID = req.Phone
	}

	token, u, err := h.login.Execute(c.Request.Context(), loginID, req.Password)
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserDTO(u),
	})
}

// Logout always succeeds, with or without a known token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if err := h.logout.Execute(c.Request.Context(), token); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
