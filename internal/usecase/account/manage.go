package account

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	domain "github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/usecase/media"
)

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, role domain.Role) ([]models.User, error) {
	return uc.repo.ListByRole(ctx, role)
}

// ======================================================
// DELETE
// ======================================================

// DeleteUser removes an account of the given role. Ids that do not exist or
// belong to the other role are not_found, and admins cannot delete themselves.
type DeleteUser struct {
	repo  domain.Repository
	audit *audit.Logger
	files media.Discarder
}

func NewDeleteUser(repo domain.Repository, audit *audit.Logger, files media.Discarder) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit, files: files}
}

func (uc *DeleteUser) Execute(
	ctx context.Context,
	actorID uint,
	targetID uint,
	role domain.Role,
) error {

	if role == domain.RoleAdmin && actorID == targetID {
		return httperr.ErrBusiness(httperr.CodeCannotDeleteSelf)
	}

	u, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if domain.Role(u.Role) != role {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := uc.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	action := audit.ActionCustomerDeleted
	if role == domain.RoleAdmin {
		action = audit.ActionAdminDeleted
	}
	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   "user",
		EntityID: &targetID,
		Metadata: map[string]string{"username": u.Username},
	})

	if u.ProfileImage != nil && uc.files != nil {
		uc.files.Discard(ctx, *u.ProfileImage)
	}
	return nil
}

// ======================================================
// PROMOTE
// ======================================================

type PromoteCustomer struct {
	repo  domain.Repository
	audit *audit.Logger
}

func NewPromoteCustomer(repo domain.Repository, audit *audit.Logger) *PromoteCustomer {
	return &PromoteCustomer{repo: repo, audit: audit}
}

func (uc *PromoteCustomer) Execute(
	ctx context.Context,
	actorID uint,
	customerID uint,
) (*models.User, error) {

	u, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !domain.IsCustomer(u.Role) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := uc.repo.UpdateRole(ctx, customerID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionCustomerPromote,
		Entity:   "user",
		EntityID: &customerID,
	})

	return uc.repo.GetByID(ctx, customerID)
}

// ======================================================
// FIRST ADMIN SETUP
// ======================================================

type SetupStatus struct {
	AdminCount int64 `json:"admin_count"`
	NeedsSetup bool  `json:"needs_setup"`
}

type Setup struct {
	repo     domain.Repository
	register *Register
}

func NewSetup(repo domain.Repository, register *Register) *Setup {
	return &Setup{repo: repo, register: register}
}

func (uc *Setup) Status(ctx context.Context) (SetupStatus, error) {
	n, err := uc.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return SetupStatus{}, err
	}
	return SetupStatus{AdminCount: n, NeedsSetup: n == 0}, nil
}

// CreateFirstAdmin only works while the store has no admin.
func (uc *Setup) CreateFirstAdmin(
	ctx context.Context,
	username, password, phone string,
) (*models.User, error) {

	st, err := uc.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !st.NeedsSetup {
		return nil, httperr.ErrBusiness(httperr.CodeSetupCompleted)
	}

	return uc.register.Execute(ctx, RegisterInput{
		Username: username,
		Password: password,
		Role:     string(domain.RoleAdmin),
		Phone:    phone,
	})
}
