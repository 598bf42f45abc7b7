package errors

import "errors"

// Common application errors. Repositories translate driver errors into these
// sentinels; handlers map them onto HTTP status codes with errors.Is.
var (
	// ErrNotFound is used when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is used for authentication failures (bad token, bad password).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is used when the caller lacks the rights for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is used for malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is used for state conflicts: duplicate rows, a full league,
	// the per-user league cap, a prediction after the deadline.
	ErrConflict = errors.New("resource state conflict")
)
