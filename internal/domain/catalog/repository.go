package catalog

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/models"
)

type Repository interface {
	// List is ordered newest first.
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uint, changes map[string]any) error
	// ReviewImages lists the image references of every review of the product.
	ReviewImages(ctx context.Context, productID uint) ([]string, error)
	// Delete removes the product and, through the foreign key, its reviews.
	Delete(ctx context.Context, id uint) error
}
