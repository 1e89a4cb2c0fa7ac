package account

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	domain "github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username string
	Password string
	Role     string
	Phone    string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo domain.Repository
}

func NewRegister(repo domain.Repository) *Register {
	return &Register{repo: repo}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	username, err := domain.ValidateCredentials(in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicateUsername)
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	phone, err := validators.NormalizeLaoPhone(in.Phone)
	if err != nil {
		return nil, err
	}

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         string(role),
	}
	if phone != "" {
		u.Phone = &phone
	}

	// The unique index still catches a concurrent registration.
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ======================================================
// CREATE ADMIN
// ======================================================

// CreateAdmin is Register with the role forced to admin, run by an admin.
type CreateAdmin struct {
	register *Register
	audit    *audit.Logger
}

func NewCreateAdmin(register *Register, audit *audit.Logger) *CreateAdmin {
	return &CreateAdmin{register: register, audit: audit}
}

func (uc *CreateAdmin) Execute(
	ctx context.Context,
	actorID uint,
	username, password, phone string,
) (*models.User, error) {

	u, err := uc.register.Execute(ctx, RegisterInput{
		Username: username,
		Password: password,
		Role:     string(domain.RoleAdmin),
		Phone:    phone,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionAdminCreated,
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]string{"username": u.Username},
	})
	return u, nil
}
