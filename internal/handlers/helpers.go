package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/dto"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

// paramID parses a positive numeric path parameter. It writes the error
// response itself and returns false on failure.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid JSON body.")
		return false
	}
	return true
}

func toUserDTO(u *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Phone:        u.Phone,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

func toUserDTOs(users []models.User) []dto.UserDTO {
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out
}
