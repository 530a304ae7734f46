// Package lifeindex contains the life index use cases and the live state holder.
package lifeindex

import (
	"context"

	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// GetCategoryInput represents the input for reading one category.
type GetCategoryInput struct {
	CategoryID string
}

// GetCategoryOutput represents a single category.
type GetCategoryOutput struct {
	Category entity.CategoryData
}

// GetCategoryUseCase handles reading a single category.
type GetCategoryUseCase struct {
	holder *StateHolder
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(holder *StateHolder) *GetCategoryUseCase {
	return &GetCategoryUseCase{
		holder: holder,
	}
}

// Execute returns the requested category.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	id, err := parseCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	state := uc.holder.Snapshot()
	return &GetCategoryOutput{
		Category: *state.Categories.Get(id),
	}, nil
}

// parseCategory validates a raw category identifier at the use case boundary.
func parseCategory(raw string) (entity.CategoryID, error) {
	id, err := entity.ParseCategoryID(raw)
	if err != nil {
		return "", domainerror.NewLifeIndexError(
			domainerror.ErrCodeUnknownCategory,
			"category must be one of: assets, health, cognition, contribution",
			domainerror.ErrUnknownCategory,
		)
	}
	return id, nil
}
