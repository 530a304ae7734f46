// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/life-index/backend/internal/application/adapter"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiService implements the adapter.TextGenerationService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Generate sends a single prompt and returns the text of the first candidate.
func (s *GeminiService) Generate(ctx context.Context, request *adapter.TextGenerationRequest) (string, error) {
	if !s.IsAvailable() {
		return "", domainerror.ErrInsightNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(request.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(resp)
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domainerror.ErrEmptyGeneration
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", domainerror.ErrEmptyGeneration
	}
	return sb.String(), nil
}
