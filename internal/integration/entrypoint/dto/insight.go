// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/life-index/backend/internal/application/usecase/insight"
)

// InsightResponse represents a generated analysis.
type InsightResponse struct {
	Analysis  string `json:"analysis"`
	Outcome   string `json:"outcome"`
	Available bool   `json:"available"`
}

// EmailReportRequest represents the request body for emailing a report.
type EmailReportRequest struct {
	To string `json:"to" binding:"omitempty,email"`
}

// EmailReportResponse represents the response after emailing a report.
type EmailReportResponse struct {
	To        string          `json:"to"`
	MessageID string          `json:"message_id"`
	Report    InsightResponse `json:"report"`
}

// ToInsightResponse converts a GenerateInsightOutput to its DTO.
func ToInsightResponse(output *insight.GenerateInsightOutput) InsightResponse {
	return InsightResponse{
		Analysis:  output.Text,
		Outcome:   string(output.Outcome),
		Available: output.Outcome != insight.OutcomeKeyMissing,
	}
}

// ToEmailReportResponse converts an EmailReportOutput to its DTO.
func ToEmailReportResponse(output *insight.EmailReportOutput) EmailReportResponse {
	return EmailReportResponse{
		To:        output.To,
		MessageID: output.MessageID,
		Report:    ToInsightResponse(output.Analysis),
	}
}
