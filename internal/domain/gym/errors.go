package gym

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrNotFound           = errors.New("not found")
	ErrCapacityExceeded   = fmt.Errorf("trainer can only manage %d members at a time", MaxAssignedMembers)
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrMalformedRecord    = errors.New("malformed record")
)

var (
	ErrAdminNotFound      = fmt.Errorf("admin %w", ErrNotFound)
	ErrMemberNotFound     = fmt.Errorf("member %w", ErrNotFound)
	ErrTrainerNotFound    = fmt.Errorf("trainer %w", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidTier        = fmt.Errorf("%w: unrecognized subscription tier", ErrValidation)
	ErrInvalidJoinDate    = fmt.Errorf("%w: join date must be YYYY-MM-DD", ErrValidation)
	ErrAlreadyAssigned    = fmt.Errorf("%w: member already assigned to trainer", ErrValidation)
	ErrNotAssigned        = fmt.Errorf("member not assigned to trainer: %w", ErrNotFound)
)

// KindOf maps err to a stable failure kind for the presentation layer.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	default:
		return "internal_error"
	}
}
