package shared

import "errors"

var (
	// ErrNotFound indicates a referenced record is absent.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied indicates a policy predicate rejected the action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation indicates malformed input or a business-rule violation.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a storage-level uniqueness or restriction violation.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates the request carries no usable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsUnauthorized reports whether err stems from a missing or bad identity.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}
