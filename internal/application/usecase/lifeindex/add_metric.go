// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"

	"github.com/life-index/backend/internal/domain/entity"
)

// AddMetricInput represents the input for appending a metric to a category.
// Nil fields keep the new-component defaults.
type AddMetricInput struct {
	CategoryID string
	Name       *string
	Value      *float64
	Target     *float64
	Unit       *string
	Type       *string
}

// AddMetricUseCase appends a metric to a category and records the update.
type AddMetricUseCase struct {
	holder *StateHolder
}

// NewAddMetricUseCase creates a new AddMetricUseCase instance.
func NewAddMetricUseCase(holder *StateHolder) *AddMetricUseCase {
	return &AddMetricUseCase{
		holder: holder,
	}
}

// Execute appends the metric and returns the updated category.
func (uc *AddMetricUseCase) Execute(ctx context.Context, input AddMetricInput) (*UpdateMetricsOutput, error) {
	id, err := parseCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	added := fromMetric(entity.NewMetric())
	if input.Name != nil {
		added.Name = *input.Name
	}
	if input.Value != nil {
		added.Value = *input.Value
	}
	if input.Target != nil {
		added.Target = *input.Target
	}
	if input.Unit != nil {
		added.Unit = *input.Unit
	}
	if input.Type != nil {
		added.Type = *input.Type
	}

	metrics, err := toMetrics([]MetricInput{added})
	if err != nil {
		return nil, err
	}

	state, err := uc.holder.AppendMetric(ctx, id, metrics[0])
	if err != nil {
		return nil, err
	}
	return newUpdateMetricsOutput(id, state), nil
}

func fromMetric(m entity.Metric) MetricInput {
	return MetricInput{
		ID:          m.ID,
		Name:        m.Name,
		Value:       m.Value,
		Target:      m.Target,
		Unit:        m.Unit,
		Type:        string(m.Type),
		Description: m.Description,
	}
}
