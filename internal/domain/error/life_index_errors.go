// Package error defines domain-specific errors for the Life Index application.
package error

import "errors"

// Life Index domain errors.
var (
	// ErrUnknownCategory is returned when a category identifier is not one of the four fixed categories.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidMetrics is returned when a metrics payload cannot be used.
	ErrInvalidMetrics = errors.New("invalid metrics")

	// ErrStateNotFound is returned by a state store when no snapshot has been saved yet.
	ErrStateNotFound = errors.New("life state not found")

	// ErrCorruptState is returned by a state store when the stored snapshot cannot be decoded.
	ErrCorruptState = errors.New("life state is corrupt")
)

// LifeIndexErrorCode defines error codes for life index errors.
// Format: LIX-XXYYYY where XX is category and YYYY is specific error.
type LifeIndexErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnknownCategory   LifeIndexErrorCode = "LIX-010001"
	ErrCodeInvalidMetrics    LifeIndexErrorCode = "LIX-010002"
	ErrCodeInvalidMetricType LifeIndexErrorCode = "LIX-010003"

	// Internal errors (99XXXX)
	ErrCodeLifeIndexInternalError LifeIndexErrorCode = "LIX-990001"
)

// LifeIndexError represents a life index error with code and message.
type LifeIndexError struct {
	Code    LifeIndexErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LifeIndexError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LifeIndexError) Unwrap() error {
	return e.Err
}

// NewLifeIndexError creates a new LifeIndexError with the given code and message.
func NewLifeIndexError(code LifeIndexErrorCode, message string, err error) *LifeIndexError {
	return &LifeIndexError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
