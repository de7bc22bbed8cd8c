package domain

import "errors"

// Error kinds surfaced to handlers. Wrap with fmt.Errorf("...: %w", Err...)
// so callers can attach detail while errors.Is keeps working.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("application already exists for this student and drive")
	ErrScoringUnavailable   = errors.New("scoring unavailable")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)
