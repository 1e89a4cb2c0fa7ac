package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var _ catalog.Repository = (*ProductGormRepository)(nil)

func (r *ProductGormRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProductGormRepository) Create(
	ctx context.Context,
	p *models.Product,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductGormRepository) UpdateFields(
	ctx context.Context,
	id uint,
	changes map[string]any,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(changes))
}

func (r *ProductGormRepository) ReviewImages(
	ctx context.Context,
	productID uint,
) ([]string, error) {

	var lists []models.StringList
	if err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Where("product_id = ? AND images IS NOT NULL", productID).
		Pluck("images", &lists).Error; err != nil {
		return nil, err
	}

	var refs []string
	for _, l := range lists {
		refs = append(refs, l...)
	}
	return refs, nil
}

func (r *ProductGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Product{}, id))
}
