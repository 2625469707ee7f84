package domain

import "errors"

// Error taxonomy shared by every layer. Lower layers wrap these with %w so callers
// can classify failures with errors.Is regardless of where they originated.
var (
	// ErrValidation is returned when input or entity state is malformed.
	// It is usually wrapped with a more specific message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced item or learner does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDataUnavailable is returned when the storage collaborator fails.
	// The original storage error stays in the chain.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrUnauthorized is returned when an item does not belong to the requesting user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
