package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/logger"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditLogsHandler{db: db, loc: loc}
}

// List pages through the audit trail, newest first. from and to are
// calendar dates in the store's timezone; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	userStr := c.Query("user_id")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if userStr != "" {
		userID, err := strconv.ParseUint(userStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid user_id.")
			return
		}
		q = q.Where("user_id = ?", userID)
	}

	if fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "from must be YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "to must be YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.FromContext(c.Request.Context()).Error("counting audit logs", "error", err)
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	// --------------------------------------------------
	// Listing
	// --------------------------------------------------

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		logger.FromContext(c.Request.Context()).Error("listing audit logs", "error", err)
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
