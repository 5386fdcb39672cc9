package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrUnauthorized       = errors.New("no token, authorization denied")

	ErrProfileExists   = errors.New("profile already exists, use update endpoint instead")
	ErrProfileNotFound = errors.New("profile not found")
	ErrLinkNotFound    = errors.New("link not found")
	ErrInvalidPhoto    = errors.New("only JPG, JPEG, and PNG files up to 2MB are allowed")
)

// ValidationError reports a missing or malformed input field. Its message is
// safe to return to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
