package httperr

import "errors"

const (
	CodeInvalidInput       = "invalid_input"
	CodeInvalidPrice       = "invalid_price"
	CodeInvalidStock       = "invalid_stock"
	CodeInvalidRating      = "invalid_rating"
	CodeInvalidRole        = "invalid_role"
	CodeInvalidPhoneFormat = "invalid_phone_format"
	CodeInvalidImage       = "invalid_image"
	CodeFileTooLarge       = "file_too_large"
	CodeDuplicateUsername  = "duplicate_username"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeUserNotFound       = "user_not_found"
	CodeNameMismatch       = "name_mismatch"
	CodeCannotDeleteSelf   = "cannot_delete_self"
	CodeSetupCompleted     = "setup_completed"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessf attaches a human readable message to a business code.
func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
