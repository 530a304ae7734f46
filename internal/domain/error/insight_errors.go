// Package error defines domain-specific errors for the Life Index application.
package error

import "errors"

// Insight domain errors.
var (
	// ErrInsightNotConfigured is returned when no credential is configured for the text generation service.
	ErrInsightNotConfigured = errors.New("insight service is not configured")

	// ErrEmptyGeneration is returned when the text generation service returns no text.
	ErrEmptyGeneration = errors.New("no text generated")

	// ErrInsightRateLimited is returned when too many insight requests are made.
	ErrInsightRateLimited = errors.New("too many insight requests")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeInsightRateLimited InsightErrorCode = "INS-010001"
	ErrCodeInvalidInsightBody InsightErrorCode = "INS-010002"
)
