// Package insight contains the use cases that turn the life state into a
// natural-language report.
package insight

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// Fixed texts returned in place of an analysis.
const (
	MessageKeyMissing  = "API Key is missing. Please configure your environment."
	MessageUnavailable = "Analysis currently unavailable due to market volatility (API Error)."
	MessageNoAnalysis  = "No analysis generated."
)

// DefaultTemperature is the sampling temperature used for reports.
const DefaultTemperature float32 = 0.7

// Outcome describes how an analysis was produced.
type Outcome string

const (
	OutcomeGenerated   Outcome = "generated"
	OutcomeKeyMissing  Outcome = "key_missing"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeEmpty       Outcome = "empty"
)

// StateReader provides a snapshot of the live state.
type StateReader interface {
	Snapshot() *entity.LifeState
}

// GenerateInsightOutput represents the analysis text and how it was produced.
type GenerateInsightOutput struct {
	Text    string
	Outcome Outcome
}

// GenerateInsightUseCase asks the text generation service for a report on the
// current state. It never fails: every problem degrades to a fixed text.
type GenerateInsightUseCase struct {
	state       StateReader
	generator   adapter.TextGenerationService
	temperature float32
}

// NewGenerateInsightUseCase creates a new GenerateInsightUseCase instance.
func NewGenerateInsightUseCase(state StateReader, generator adapter.TextGenerationService, temperature float32) *GenerateInsightUseCase {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &GenerateInsightUseCase{
		state:       state,
		generator:   generator,
		temperature: temperature,
	}
}

// IsAvailable reports whether a credential is configured.
func (uc *GenerateInsightUseCase) IsAvailable() bool {
	return uc.generator != nil && uc.generator.IsAvailable()
}

// Execute generates the analysis for the current state.
func (uc *GenerateInsightUseCase) Execute(ctx context.Context) *GenerateInsightOutput {
	return uc.Analyze(ctx, uc.state.Snapshot())
}

// Analyze generates the analysis for the given state.
func (uc *GenerateInsightUseCase) Analyze(ctx context.Context, state *entity.LifeState) *GenerateInsightOutput {
	if !uc.IsAvailable() {
		return &GenerateInsightOutput{Text: MessageKeyMissing, Outcome: OutcomeKeyMissing}
	}

	prompt, err := BuildPrompt(state)
	if err != nil {
		slog.Error("Failed to build insight prompt", "error", err)
		return &GenerateInsightOutput{Text: MessageUnavailable, Outcome: OutcomeUnavailable}
	}

	text, err := uc.generator.Generate(ctx, &adapter.TextGenerationRequest{
		Prompt:      prompt,
		Temperature: uc.temperature,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrEmptyGeneration) {
			return &GenerateInsightOutput{Text: MessageNoAnalysis, Outcome: OutcomeEmpty}
		}
		slog.Error("Insight generation failed",
			"reason", classifyError(err),
			"error", err,
		)
		return &GenerateInsightOutput{Text: MessageUnavailable, Outcome: OutcomeUnavailable}
	}

	if strings.TrimSpace(text) == "" {
		return &GenerateInsightOutput{Text: MessageNoAnalysis, Outcome: OutcomeEmpty}
	}

	return &GenerateInsightOutput{Text: text, Outcome: OutcomeGenerated}
}
