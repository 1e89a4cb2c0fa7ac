package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/usecase/dashboard"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

var _ dashboard.Repository = (*DashboardGormRepository)(nil)

func (r *DashboardGormRepository) Counts(ctx context.Context) (dashboard.Counts, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error; err != nil {
		return dashboard.Counts{}, err
	}

	var c dashboard.Counts
	for _, row := range rows {
		c.Users += row.Total
		switch row.Role {
		case "admin":
			c.Admins = row.Total
		case "customer":
			c.Customers = row.Total
		}
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Count(&c.Products).Error; err != nil {
		return dashboard.Counts{}, err
	}
	return c, nil
}

func (r *DashboardGormRepository) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Select("id", "name", "price", "stock", "created_at").
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *DashboardGormRepository) UsersCreatedSince(
	ctx context.Context,
	since time.Time,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("id", "username", "role", "created_at").
		Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
