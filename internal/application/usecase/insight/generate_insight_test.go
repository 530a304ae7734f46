package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

type fakeGenerator struct {
	available bool
	text      string
	err       error
	requests  []*adapter.TextGenerationRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, request *adapter.TextGenerationRequest) (string, error) {
	g.requests = append(g.requests, request)
	return g.text, g.err
}

func (g *fakeGenerator) IsAvailable() bool {
	return g.available
}

type staticState struct {
	state *entity.LifeState
}

func (s staticState) Snapshot() *entity.LifeState {
	return s.state.Clone()
}

func testState() *entity.LifeState {
	state, _ := entity.NewDefaultLifeState(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)).Reconcile()
	return state
}

func TestGenerateInsightUseCase_Execute(t *testing.T) {
	tests := []struct {
		name            string
		generator       *fakeGenerator
		expectedText    string
		expectedOutcome Outcome
		expectCall      bool
	}{
		{
			name:            "returns generated text verbatim",
			generator:       &fakeGenerator{available: true, text: "Bullish on health.\n\nBuy sleep."},
			expectedText:    "Bullish on health.\n\nBuy sleep.",
			expectedOutcome: OutcomeGenerated,
			expectCall:      true,
		},
		{
			name:            "missing key returns fixed text without calling the service",
			generator:       &fakeGenerator{available: false, text: "ignored"},
			expectedText:    MessageKeyMissing,
			expectedOutcome: OutcomeKeyMissing,
			expectCall:      false,
		},
		{
			name:            "service failure returns unavailable text",
			generator:       &fakeGenerator{available: true, err: errors.New("rpc error: code = Unavailable")},
			expectedText:    MessageUnavailable,
			expectedOutcome: OutcomeUnavailable,
			expectCall:      true,
		},
		{
			name:            "quota failure returns unavailable text",
			generator:       &fakeGenerator{available: true, err: errors.New("googleapi: Error 429: quota exceeded")},
			expectedText:    MessageUnavailable,
			expectedOutcome: OutcomeUnavailable,
			expectCall:      true,
		},
		{
			name:            "empty generation returns no analysis text",
			generator:       &fakeGenerator{available: true, err: domainerror.ErrEmptyGeneration},
			expectedText:    MessageNoAnalysis,
			expectedOutcome: OutcomeEmpty,
			expectCall:      true,
		},
		{
			name:            "whitespace text returns no analysis text",
			generator:       &fakeGenerator{available: true, text: "  \n "},
			expectedText:    MessageNoAnalysis,
			expectedOutcome: OutcomeEmpty,
			expectCall:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGenerateInsightUseCase(staticState{testState()}, tt.generator, 0)

			output := uc.Execute(context.Background())

			if output.Text != tt.expectedText {
				t.Errorf("expected text %q, got %q", tt.expectedText, output.Text)
			}
			if output.Outcome != tt.expectedOutcome {
				t.Errorf("expected outcome %s, got %s", tt.expectedOutcome, output.Outcome)
			}
			if called := len(tt.generator.requests) > 0; called != tt.expectCall {
				t.Errorf("expected call=%v, got %v", tt.expectCall, called)
			}
		})
	}
}

func TestGenerateInsightUseCase_Request(t *testing.T) {
	generator := &fakeGenerator{available: true, text: "ok"}
	uc := NewGenerateInsightUseCase(staticState{testState()}, generator, 0)

	uc.Execute(context.Background())

	if len(generator.requests) != 1 {
		t.Fatalf("expected a single request, got %d", len(generator.requests))
	}
	req := generator.requests[0]
	if req.Temperature != DefaultTemperature {
		t.Errorf("expected temperature %v, got %v", DefaultTemperature, req.Temperature)
	}
	if !strings.Contains(req.Prompt, "Chief Life Officer") {
		t.Error("expected prompt framing")
	}
}

func TestGenerateInsightUseCase_NilGenerator(t *testing.T) {
	uc := NewGenerateInsightUseCase(staticState{testState()}, nil, 0.2)

	if uc.IsAvailable() {
		t.Error("expected unavailable without generator")
	}
	if output := uc.Execute(context.Background()); output.Text != MessageKeyMissing {
		t.Errorf("expected key missing text, got %q", output.Text)
	}
}

func TestBuildSummary(t *testing.T) {
	t.Run("uses live total without history", func(t *testing.T) {
		state := testState()
		summary := BuildSummary(state)

		if summary.TotalIndex != state.TotalIndex() {
			t.Errorf("expected %v, got %v", state.TotalIndex(), summary.TotalIndex)
		}
		if len(summary.Categories) != 4 {
			t.Fatalf("expected 4 categories, got %d", len(summary.Categories))
		}
		health := summary.Categories[1]
		if health.Name != "Health & Eudaimonia" {
			t.Errorf("unexpected name %q", health.Name)
		}
		expected := "Sleep Quality: 7.5 /10 (Ref: 7), Exercise: 180 mins (Ref: 150), Eudaimonia: 6 /10 (Ref: 5)"
		if health.Components != expected {
			t.Errorf("expected components %q, got %q", expected, health.Components)
		}
	})

	t.Run("uses latest history total", func(t *testing.T) {
		state := testState()
		state = state.ApplyMetricUpdate(entity.CategoryAssets, []entity.Metric{{Name: "Cash", Value: 1, Target: 1}}, time.Now())
		state.History[len(state.History)-1].TotalScore = 42

		if got := BuildSummary(state).TotalIndex; got != 42 {
			t.Errorf("expected 42, got %v", got)
		}
	})

	t.Run("empty category has empty components", func(t *testing.T) {
		state := testState()
		state = state.ApplyMetricUpdate(entity.CategoryCognition, nil, time.Now())

		if got := BuildSummary(state).Categories[2].Components; got != "" {
			t.Errorf("expected empty components, got %q", got)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{
		`"totalIndex"`,
		`"name": "Assets & Skills"`,
		"Liquid Cash: 15000 $ (Ref: 10000)",
		"Keep it under 250 words.",
		"3 \"Buy\" recommendations",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("expected prompt to contain %q", fragment)
		}
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: ReasonTimeout},
		{name: "wrapped cancellation", err: errors.Join(errors.New("generate"), context.Canceled), expected: ReasonTimeout},
		{name: "empty generation", err: domainerror.ErrEmptyGeneration, expected: ReasonEmptyResponse},
		{name: "quota", err: errors.New("quota exceeded"), expected: ReasonRateLimited},
		{name: "resource exhausted", err: errors.New("rpc error: code = ResourceExhausted desc = resource exhausted"), expected: ReasonRateLimited},
		{name: "bad key", err: errors.New("API key not valid"), expected: ReasonAuthError},
		{name: "forbidden", err: errors.New("googleapi: Error 403"), expected: ReasonAuthError},
		{name: "dial", err: errors.New("dial tcp: lookup failed"), expected: ReasonServiceUnavailable},
		{name: "503", err: errors.New("HTTP 503"), expected: ReasonServiceUnavailable},
		{name: "other", err: errors.New("something odd"), expected: ReasonUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
