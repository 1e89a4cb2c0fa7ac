package review

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/models"
)

type Repository interface {
	ProductExists(ctx context.Context, productID uint) (bool, error)

	// List is ordered newest first; a nil productID lists every review.
	List(ctx context.Context, productID *uint) ([]models.ProductReview, error)
	GetByID(ctx context.Context, id uint) (*models.ProductReview, error)
	Create(ctx context.Context, r *models.ProductReview) error
	UpdateFields(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error

	Summary(ctx context.Context, productID uint) (Summary, error)
}
