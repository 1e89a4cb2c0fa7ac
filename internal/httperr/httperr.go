package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/logger"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var statusByCode = map[string]int{
	CodeInvalidInput:       http.StatusBadRequest,
	CodeInvalidPrice:       http.StatusBadRequest,
	CodeInvalidStock:       http.StatusBadRequest,
	CodeInvalidRating:      http.StatusBadRequest,
	CodeInvalidRole:        http.StatusBadRequest,
	CodeInvalidPhoneFormat: http.StatusBadRequest,
	CodeInvalidImage:       http.StatusBadRequest,
	CodeCannotDeleteSelf:   http.StatusBadRequest,
	CodeFileTooLarge:       http.StatusRequestEntityTooLarge,
	CodeDuplicateUsername:  http.StatusConflict,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUnauthenticated:    http.StatusUnauthorized,
	CodeUserNotFound:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeSetupCompleted:     http.StatusForbidden,
	CodeNameMismatch:       http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
}

var defaultMessages = map[string]string{
	CodeInvalidInput:       "Invalid request.",
	CodeInvalidPrice:       "Price must be greater than or equal to 0.",
	CodeInvalidStock:       "Stock must be greater than or equal to 0.",
	CodeInvalidRating:      "Rating must be between 1 and 5.",
	CodeInvalidRole:        "Role must be 'admin' or 'customer'.",
	CodeInvalidPhoneFormat: "Only Lao mobile numbers starting with 020 are accepted (020xxxxxxxx or +85620xxxxxxxx).",
	CodeInvalidImage:       "Unsupported image (png, jpg, jpeg, gif, webp only).",
	CodeFileTooLarge:       "File is too large.",
	CodeCannotDeleteSelf:   "You cannot delete the account you are signed in with.",
	CodeDuplicateUsername:  "Username is already taken.",
	CodeInvalidCredentials: "Invalid username/phone or password.",
	CodeUnauthenticated:    "Please sign in.",
	CodeUserNotFound:       "No user found for this token.",
	CodeForbidden:          "Admin access required.",
	CodeSetupCompleted:     "An admin already exists.",
	CodeNameMismatch:       "Name does not match the review; rating cannot be changed.",
	CodeNotFound:           "Not found.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// StatusFor returns the HTTP status for a business code.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

func MessageFor(code string) string {
	if msg, ok := defaultMessages[code]; ok {
		return msg
	}
	return code
}

// FromError writes err as a JSON error. Anything that is not a BusinessError
// is logged and reported as internal_error.
func FromError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = MessageFor(be.Code)
		}
		Write(c, StatusFor(be.Code), be.Code, msg)
		return
	}

	logger.FromContext(c.Request.Context()).Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	Internal(c, "internal_error", "Internal server error.")
}

// Abort is FromError for middleware.
func Abort(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}
