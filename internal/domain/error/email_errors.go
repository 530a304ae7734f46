// Package error defines domain-specific errors for the Life Index application.
package error

import "errors"

// Email domain errors.
var (
	// ErrEmailNotConfigured is returned when report delivery has no provider key or recipient.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrPermanentEmailFailure is returned when an email fails with a permanent error.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when an email fails with a temporary error.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for email errors.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeEmailNotConfigured EmailErrorCode = "EML-010001"
	ErrCodeMissingRecipient   EmailErrorCode = "EML-010002"

	// Send errors (02XXXX)
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-020002"

	// Template errors (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EML-030001"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
