// Package entity defines the core business entities for the domain layer.
package entity

import "fmt"

// CategoryID identifies one of the four fixed life categories.
type CategoryID string

const (
	CategoryAssets       CategoryID = "assets"
	CategoryHealth       CategoryID = "health"
	CategoryCognition    CategoryID = "cognition"
	CategoryContribution CategoryID = "contribution"
)

// CategoryIDs lists the categories in display order.
var CategoryIDs = [...]CategoryID{
	CategoryAssets,
	CategoryHealth,
	CategoryCognition,
	CategoryContribution,
}

// ParseCategoryID converts a raw identifier into a CategoryID.
func ParseCategoryID(raw string) (CategoryID, error) {
	id := CategoryID(raw)
	if !id.IsValid() {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return id, nil
}

// IsValid reports whether id is one of the four fixed categories.
func (id CategoryID) IsValid() bool {
	switch id {
	case CategoryAssets, CategoryHealth, CategoryCognition, CategoryContribution:
		return true
	default:
		return false
	}
}

// CategoryData is one life category with its metrics and derived score.
type CategoryData struct {
	ID      CategoryID
	Label   string
	Color   string
	Metrics []Metric
	Score   float64 // Derived from Metrics, never edited directly
}

// WithMetrics returns a copy of the category holding metrics and the score
// computed from them.
func (c CategoryData) WithMetrics(metrics []Metric) CategoryData {
	c.Metrics = cloneMetrics(metrics)
	c.Score = ScoreMetrics(c.Metrics)
	return c
}

// Clone returns a deep copy of the category.
func (c CategoryData) Clone() CategoryData {
	c.Metrics = cloneMetrics(c.Metrics)
	return c
}

// Categories is the fixed record of the four life categories. It is a struct
// rather than a map so that no category can be added or removed.
type Categories struct {
	Assets       CategoryData
	Health       CategoryData
	Cognition    CategoryData
	Contribution CategoryData
}

// Get returns a pointer to the category slot for id, or nil for an unknown id.
func (c *Categories) Get(id CategoryID) *CategoryData {
	switch id {
	case CategoryAssets:
		return &c.Assets
	case CategoryHealth:
		return &c.Health
	case CategoryCognition:
		return &c.Cognition
	case CategoryContribution:
		return &c.Contribution
	default:
		return nil
	}
}

// All returns the four categories in display order.
func (c Categories) All() []CategoryData {
	return []CategoryData{c.Assets, c.Health, c.Cognition, c.Contribution}
}

// Total returns the sum of the four category scores.
func (c Categories) Total() float64 {
	return c.Assets.Score + c.Health.Score + c.Cognition.Score + c.Contribution.Score
}

// Clone returns a deep copy of all categories.
func (c Categories) Clone() Categories {
	return Categories{
		Assets:       c.Assets.Clone(),
		Health:       c.Health.Clone(),
		Cognition:    c.Cognition.Clone(),
		Contribution: c.Contribution.Clone(),
	}
}

func cloneMetrics(metrics []Metric) []Metric {
	if metrics == nil {
		return []Metric{}
	}
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}
