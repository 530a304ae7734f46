// Package insight contains the use cases that turn the life state into a
// natural-language report.
package insight

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/life-index/backend/internal/domain/error"
)

// Failure reasons recorded in logs when generation falls back.
const (
	ReasonServiceUnavailable = "AI_SERVICE_UNAVAILABLE"
	ReasonRateLimited        = "AI_RATE_LIMITED"
	ReasonAuthError          = "AI_AUTH_ERROR"
	ReasonTimeout            = "AI_TIMEOUT"
	ReasonEmptyResponse      = "AI_EMPTY_RESPONSE"
	ReasonUnknownError       = "AI_UNKNOWN_ERROR"
)

// classifyError maps a generation failure to a log reason. The reason is
// never shown to the user.
func classifyError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ReasonTimeout
	}
	if errors.Is(err, domainerror.ErrEmptyGeneration) {
		return ReasonEmptyResponse
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted"):
		return ReasonRateLimited
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "permission denied"):
		return ReasonAuthError
	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503"):
		return ReasonServiceUnavailable
	default:
		return ReasonUnknownError
	}
}
