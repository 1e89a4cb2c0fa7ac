package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
	ContextToken    = "token"
)

// maxTokenBody caps how much of a JSON body is read while looking for a
// token field.
const maxTokenBody = 1 << 20

// UserResolver maps a session token to its user.
type UserResolver interface {
	Execute(ctx context.Context, token string) (*models.User, error)
}

// TokenFromRequest looks for the session token in the Authorization header,
// then the token query parameter, then a "token" field of a JSON body. The
// body is left intact for the handler.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if t := strings.TrimSpace(parts[1]); t != "" {
				return t
			}
		}
	}

	if t := strings.TrimSpace(c.Query("token")); t != "" {
		return t
	}

	return tokenFromBody(c)
}

func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	body := c.Request.Body
	raw, err := io.ReadAll(io.LimitReader(body, maxTokenBody+1))
	c.Request.Body = replayBody{
		Reader: io.MultiReader(bytes.NewReader(raw), body),
		Closer: body,
	}
	// Bodies past the cap are passed through untouched and not searched.
	if err != nil || len(raw) == 0 || len(raw) > maxTokenBody {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	return strings.TrimSpace(payload.Token)
}

// replayBody serves the bytes already read, then the rest of the original
// body, and closes the original.
type replayBody struct {
	io.Reader
	io.Closer
}

func authenticate(c *gin.Context, resolver UserResolver) (*models.User, bool) {
	token := TokenFromRequest(c)
	if token == "" {
		httperr.Abort(c, httperr.ErrBusiness(httperr.CodeUnauthenticated))
		return nil, false
	}

	u, err := resolver.Execute(c.Request.Context(), token)
	if err != nil {
		httperr.Abort(c, err)
		return nil, false
	}

	c.Set(ContextToken, token)
	c.Set(ContextUser, u)
	c.Set(ContextUserID, u.ID)
	c.Set(ContextUserRole, u.Role)
	return u, true
}

// RequireUser lets any signed-in user through.
func RequireUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, resolver); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin answers 401 without a valid session and 403 for non-admins.
func RequireAdmin(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authenticate(c, resolver)
		if !ok {
			return
		}
		if !account.IsAdmin(u.Role) {
			httperr.Abort(c, httperr.ErrBusiness(httperr.CodeForbidden))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser or RequireAdmin.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}
