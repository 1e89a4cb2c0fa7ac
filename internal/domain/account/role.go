package account

import "github.com/BruksfildServices01/champa-store/internal/httperr"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole accepts exactly "admin" or "customer". Empty means customer.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "", RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", httperr.ErrBusiness(httperr.CodeInvalidRole)
	}
}

func IsAdmin(role string) bool {
	return Role(role) == RoleAdmin
}

func IsCustomer(role string) bool {
	return Role(role) == RoleCustomer
}
