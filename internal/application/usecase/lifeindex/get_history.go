// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"

	"github.com/life-index/backend/internal/domain/entity"
)

// GetHistoryOutput represents the stored score history.
type GetHistoryOutput struct {
	Points     []entity.HistoryPoint
	Categories []entity.CategoryData
	Limit      int
	TotalIndex float64
}

// GetHistoryUseCase handles reading the score history.
type GetHistoryUseCase struct {
	holder *StateHolder
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(holder *StateHolder) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		holder: holder,
	}
}

// Execute returns history points oldest first.
func (uc *GetHistoryUseCase) Execute(ctx context.Context) (*GetHistoryOutput, error) {
	state := uc.holder.Snapshot()

	return &GetHistoryOutput{
		Points:     state.History,
		Categories: state.Categories.All(),
		Limit:      entity.HistoryLimit,
		TotalIndex: state.TotalIndex(),
	}, nil
}
