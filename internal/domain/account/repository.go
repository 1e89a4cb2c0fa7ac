package account

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/models"
)

// Repository returns a not_found business error for missing rows and
// duplicate_username when the unique index on username fires.
type Repository interface {
	Create(ctx context.Context, u *models.User) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)

	// ListByRole is ordered newest first.
	ListByRole(ctx context.Context, role Role) ([]models.User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)

	UpdateRole(ctx context.Context, id uint, role Role) error
	UpdateProfileImage(ctx context.Context, id uint, ref *string) error
	Delete(ctx context.Context, id uint) error
}
