// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"
	"time"

	"github.com/life-index/backend/internal/domain/entity"
)

// GetDashboardOutput represents the current scores of the life index.
type GetDashboardOutput struct {
	Categories   []entity.CategoryData
	TotalIndex   float64
	HistoryCount int
	LastUpdated  time.Time
}

// GetDashboardUseCase handles reading the current life index.
type GetDashboardUseCase struct {
	holder *StateHolder
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(holder *StateHolder) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		holder: holder,
	}
}

// Execute returns the four categories in display order and the live total index.
func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*GetDashboardOutput, error) {
	state := uc.holder.Snapshot()

	return &GetDashboardOutput{
		Categories:   state.Categories.All(),
		TotalIndex:   state.TotalIndex(),
		HistoryCount: len(state.History),
		LastUpdated:  state.LastUpdated,
	}, nil
}
