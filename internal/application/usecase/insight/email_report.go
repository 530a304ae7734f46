// Package insight contains the use cases that turn the life state into a
// natural-language report.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// ReportTemplate is the template name used for emailed reports.
const ReportTemplate = "insight_report"

// TemplateRenderer renders named templates into HTML and text bodies.
type TemplateRenderer interface {
	Render(templateName string, data interface{}) (html string, text string, err error)
}

// ReportData is the data passed to the report template.
type ReportData struct {
	GeneratedAt string
	TotalIndex  string
	Categories  []ReportCategory
	Analysis    string
	Paragraphs  []string
}

// ReportCategory is one category row in the report.
type ReportCategory struct {
	Label string
	Color string
	Score string
}

// EmailReportInput represents the input for emailing a report.
type EmailReportInput struct {
	To string // Optional, falls back to the configured recipient
}

// EmailReportOutput represents the result of emailing a report.
type EmailReportOutput struct {
	To        string
	MessageID string
	Analysis  *GenerateInsightOutput
}

// EmailReportUseCase generates an analysis and emails it with the current scores.
type EmailReportUseCase struct {
	state            StateReader
	insight          *GenerateInsightUseCase
	sender           adapter.EmailSender
	renderer         TemplateRenderer
	defaultRecipient string
	clock            adapter.Clock
}

// NewEmailReportUseCase creates a new EmailReportUseCase instance. A nil
// sender disables delivery. A nil clock reads the system time.
func NewEmailReportUseCase(
	state StateReader,
	insight *GenerateInsightUseCase,
	sender adapter.EmailSender,
	renderer TemplateRenderer,
	defaultRecipient string,
	clock adapter.Clock,
) *EmailReportUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &EmailReportUseCase{
		state:            state,
		insight:          insight,
		sender:           sender,
		renderer:         renderer,
		defaultRecipient: defaultRecipient,
		clock:            clock,
	}
}

// IsAvailable reports whether report delivery is configured.
func (uc *EmailReportUseCase) IsAvailable() bool {
	return uc.sender != nil && uc.renderer != nil
}

// Execute generates the analysis and sends it.
func (uc *EmailReportUseCase) Execute(ctx context.Context, input EmailReportInput) (*EmailReportOutput, error) {
	if !uc.IsAvailable() {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailNotConfigured,
			"report email delivery is not configured",
			domainerror.ErrEmailNotConfigured,
		)
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		to = uc.defaultRecipient
	}
	if to == "" {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"no recipient given and no default recipient configured",
			domainerror.ErrEmailNotConfigured,
		)
	}

	state := uc.state.Snapshot()
	analysis := uc.insight.Analyze(ctx, state)

	html, text, err := uc.renderer.Render(ReportTemplate, NewReportData(state, analysis.Text, uc.clock.Now()))
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render report",
			fmt.Errorf("%w: %v", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      to,
		Subject: "Your Life Index Market Report",
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		slog.Error("Failed to send report email", "recipient", to, "error", err)
		return nil, err
	}

	slog.Info("Report email sent", "recipient", to, "message_id", result.MessageID)

	return &EmailReportOutput{
		To:        to,
		MessageID: result.MessageID,
		Analysis:  analysis,
	}, nil
}

// NewReportData builds template data with scores rounded to two decimals.
func NewReportData(state *entity.LifeState, analysis string, generatedAt time.Time) ReportData {
	categories := state.Categories.All()
	rows := make([]ReportCategory, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, ReportCategory{
			Label: c.Label,
			Color: c.Color,
			Score: decimal.NewFromFloat(c.Score).StringFixed(2),
		})
	}

	var paragraphs []string
	for _, p := range strings.Split(analysis, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	return ReportData{
		GeneratedAt: generatedAt.UTC().Format(time.RFC1123),
		TotalIndex:  decimal.NewFromFloat(state.TotalIndex()).StringFixed(2),
		Categories:  rows,
		Analysis:    analysis,
		Paragraphs:  paragraphs,
	}
}
