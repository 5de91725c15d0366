package usecase

import "errors"

var (
	ErrNoteNotFound            = errors.New("note not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrSelfDelete              = errors.New("cannot delete your own admin account")
	ErrEmailTaken              = errors.New("user already exists with this email")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(message string) error {
	return &ValidationError{Message: message}
}
