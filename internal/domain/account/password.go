package account

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidateCredentials trims the username and requires both fields.
func ValidateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "Username is required.")
	}
	if password == "" {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "Password is required.")
	}
	return username, nil
}
