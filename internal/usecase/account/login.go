package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/session"
	"github.com/BruksfildServices01/champa-store/internal/validators"
)

type Login struct {
	repo     domain.Repository
	sessions session.Store
	newToken func() string
}

func NewLogin(repo domain.Repository, sessions session.Store) *Login {
	return &Login{
		repo:     repo,
		sessions: sessions,
		newToken: uuid.NewString,
	}
}

// Execute accepts a username or a Lao mobile number as loginID. A missing
// account and a wrong password both return invalid_credentials.
func (uc *Login) Execute(
	ctx context.Context,
	loginID string,
	password string,
) (string, *models.User, error) {

	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return "", nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "Username or phone number is required.")
	}

	u, err := uc.lookup(ctx, loginID)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !domain.CheckPassword(u.PasswordHash, password) {
		return "", nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	token := uc.newToken()
	if err := uc.sessions.Put(ctx, token, u.ID); err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// lookup tries the username first and falls back to the phone number.
func (uc *Login) lookup(ctx context.Context, loginID string) (*models.User, error) {
	u, err := uc.repo.GetByUsername(ctx, loginID)
	if err == nil {
		return u, nil
	}
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, err
	}

	phone, err := validators.NormalizeLaoPhone(loginID)
	if err != nil || phone == "" {
		return nil, nil
	}

	u, err = uc.repo.GetByPhone(ctx, phone)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, nil
	}
	return u, err
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	sessions session.Store
}

func NewLogout(sessions session.Store) *Logout {
	return &Logout{sessions: sessions}
}

func (uc *Logout) Execute(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.Remove(ctx, token)
}

// ======================================================
// CURRENT USER
// ======================================================

type CurrentUser struct {
	repo     domain.Repository
	sessions session.Store
}

func NewCurrentUser(repo domain.Repository, sessions session.Store) *CurrentUser {
	return &CurrentUser{repo: repo, sessions: sessions}
}

func (uc *CurrentUser) Execute(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthenticated)
	}

	userID, err := uc.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeUnauthenticated)
		}
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, userID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	return u, err
}
