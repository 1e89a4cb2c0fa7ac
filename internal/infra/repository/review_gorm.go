package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/domain/review"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

var _ review.Repository = (*ReviewGormRepository)(nil)

func (r *ReviewGormRepository) ProductExists(
	ctx context.Context,
	productID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) List(
	ctx context.Context,
	productID *uint,
) ([]models.ProductReview, error) {

	q := r.db.WithContext(ctx).Model(&models.ProductReview{})
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}

	var reviews []models.ProductReview
	if err := q.
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.ProductReview, error) {

	var rv models.ProductReview
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

func (r *ReviewGormRepository) Create(
	ctx context.Context,
	rv *models.ProductReview,
) error {
	return r.db.WithContext(ctx).Omit("Product").Create(rv).Error
}

func (r *ReviewGormRepository) UpdateFields(
	ctx context.Context,
	id uint,
	changes map[string]any,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Where("id = ?", id).
		Updates(changes))
}

func (r *ReviewGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.ProductReview{}, id))
}

func (r *ReviewGormRepository) Summary(
	ctx context.Context,
	productID uint,
) (review.Summary, error) {

	var row struct {
		Average *float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Select("CAST(AVG(rating) AS FLOAT) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return review.Summary{}, err
	}

	s := review.Summary{ProductID: productID, Count: row.Count}
	if row.Average != nil {
		s.Average = *row.Average
	}
	return s, nil
}
