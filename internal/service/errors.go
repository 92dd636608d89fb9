package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
// Handlers map these onto HTTP statuses; details are attached with %w.
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDuplicate         = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrConfigUnavailable = errors.New("region configuration unavailable")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrMediaDisabled     = errors.New("media storage is not configured")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// storeError hides a driver error behind ErrStoreUnavailable while keeping
// it in the chain for logs.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
