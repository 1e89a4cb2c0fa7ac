package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

var _ account.Repository = (*UserGormRepository)(nil)

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeDuplicateUsername)
	}
	return err
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *UserGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByPhone(
	ctx context.Context,
	phone string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("id ASC").
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) UsernameExists(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *UserGormRepository) ListByRole(
	ctx context.Context,
	role account.Role,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at DESC, id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) CountByRole(
	ctx context.Context,
	role account.Role,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(role)).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Updates
// --------------------------------------------------

func (r *UserGormRepository) UpdateRole(
	ctx context.Context,
	id uint,
	role account.Role,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", string(role)))
}

func (r *UserGormRepository) UpdateProfileImage(
	ctx context.Context,
	id uint,
	ref *string,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("profile_image", ref))
}

func (r *UserGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.User{}, id))
}
