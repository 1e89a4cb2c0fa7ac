package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/logger"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

// ===============================
// Actions
// ===============================

const (
	ActionProductCreated  = "product_created"
	ActionProductUpdated  = "product_updated"
	ActionProductDeleted  = "product_deleted"
	ActionReviewCreated   = "review_created"
	ActionReviewUpdated   = "review_updated"
	ActionReviewDeleted   = "review_deleted"
	ActionAdminCreated    = "admin_created"
	ActionAdminDeleted    = "admin_deleted"
	ActionCustomerDeleted = "customer_deleted"
	ActionCustomerPromote = "customer_promoted"
	ActionImageUploaded   = "image_uploaded"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Logger writes audit rows in the request path. Failures are logged and
// never reach the caller. A nil *Logger records nothing.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	if l == nil {
		return
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.FromContext(ctx).Warn("audit write failed",
			"action", ev.Action,
			"entity", ev.Entity,
			"error", err,
		)
	}
}
