package apperrors

import "errors"

// Sentinel kinds for the failure modes the API reports. Services wrap them
// with context via fmt.Errorf and %w; handlers pick the HTTP status with
// errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
