// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// MetricInput represents one metric submitted for a category.
type MetricInput struct {
	ID          string // Optional, generated when empty
	Name        string
	Value       float64
	Target      float64
	Unit        string
	Type        string // Optional, defaults to numeric
	Description string
}

// UpdateMetricsInput represents the input for replacing a category's metrics.
type UpdateMetricsInput struct {
	CategoryID string
	Metrics    []MetricInput
}

// UpdateMetricsOutput represents the output of a metrics update.
type UpdateMetricsOutput struct {
	Category    entity.CategoryData
	TotalIndex  float64
	LatestPoint entity.HistoryPoint
	State       *entity.LifeState
}

// UpdateMetricsUseCase handles replacing the metrics of one category.
type UpdateMetricsUseCase struct {
	holder *StateHolder
}

// NewUpdateMetricsUseCase creates a new UpdateMetricsUseCase instance.
func NewUpdateMetricsUseCase(holder *StateHolder) *UpdateMetricsUseCase {
	return &UpdateMetricsUseCase{
		holder: holder,
	}
}

// Execute validates the input, applies the update and returns the new scores.
func (uc *UpdateMetricsUseCase) Execute(ctx context.Context, input UpdateMetricsInput) (*UpdateMetricsOutput, error) {
	id, err := parseCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	metrics, err := toMetrics(input.Metrics)
	if err != nil {
		return nil, err
	}

	state, err := uc.holder.ApplyMetricUpdate(ctx, id, metrics)
	if err != nil {
		return nil, err
	}
	return newUpdateMetricsOutput(id, state), nil
}

func newUpdateMetricsOutput(id entity.CategoryID, state *entity.LifeState) *UpdateMetricsOutput {
	latest, _ := state.LatestHistoryPoint()

	return &UpdateMetricsOutput{
		Category:    *state.Categories.Get(id),
		TotalIndex:  state.TotalIndex(),
		LatestPoint: latest,
		State:       state,
	}
}

// toMetrics converts inputs to entities, generating missing ids and
// defaulting the type. Duplicate ids are rejected.
func toMetrics(inputs []MetricInput) ([]entity.Metric, error) {
	metrics := make([]entity.Metric, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for i, in := range inputs {
		metricType := entity.MetricType(in.Type)
		if in.Type == "" {
			metricType = entity.MetricTypeNumeric
		}
		if !metricType.IsValid() {
			return nil, domainerror.NewLifeIndexError(
				domainerror.ErrCodeInvalidMetricType,
				fmt.Sprintf("metric %d: type must be numeric or scale", i),
				domainerror.ErrInvalidMetrics,
			)
		}

		if !isFinite(in.Value) || !isFinite(in.Target) {
			return nil, domainerror.NewLifeIndexError(
				domainerror.ErrCodeInvalidMetrics,
				fmt.Sprintf("metric %d: value and target must be finite numbers", i),
				domainerror.ErrInvalidMetrics,
			)
		}

		metricID := in.ID
		if metricID == "" {
			metricID = uuid.NewString()
		}
		if _, dup := seen[metricID]; dup {
			return nil, domainerror.NewLifeIndexError(
				domainerror.ErrCodeInvalidMetrics,
				fmt.Sprintf("duplicate metric id %q", metricID),
				domainerror.ErrInvalidMetrics,
			)
		}
		seen[metricID] = struct{}{}

		metric := entity.Metric{
			ID:          metricID,
			Name:        in.Name,
			Value:       in.Value,
			Target:      in.Target,
			Unit:        in.Unit,
			Type:        metricType,
			Description: in.Description,
		}
		if !isFinite(metric.Points()) {
			return nil, domainerror.NewLifeIndexError(
				domainerror.ErrCodeInvalidMetrics,
				fmt.Sprintf("metric %d: value is too large for its target", i),
				domainerror.ErrInvalidMetrics,
			)
		}
		metrics = append(metrics, metric)
	}

	return metrics, nil
}
