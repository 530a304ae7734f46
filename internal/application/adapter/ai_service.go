// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TextGenerationRequest represents a single prompt sent to a generative text service.
type TextGenerationRequest struct {
	Prompt      string
	Temperature float32
}

// TextGenerationService defines the interface for generative text operations.
type TextGenerationService interface {
	// Generate sends the prompt and returns the generated text verbatim.
	Generate(ctx context.Context, request *TextGenerationRequest) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}
