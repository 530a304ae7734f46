// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/domain/entity"
)

// MetricRequest represents one metric in an update request.
type MetricRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Type        string  `json:"type" binding:"omitempty,oneof=numeric scale"`
	Description string  `json:"description"`
}

// UpdateMetricsRequest represents the request body for replacing a category's metrics.
type UpdateMetricsRequest struct {
	Metrics []MetricRequest `json:"metrics" binding:"required,dive"`
}

// AddMetricRequest represents the request body for appending a metric.
// Omitted fields take the defaults of a new component.
type AddMetricRequest struct {
	Name   *string  `json:"name"`
	Value  *float64 `json:"value"`
	Target *float64 `json:"target"`
	Unit   *string  `json:"unit"`
	Type   *string  `json:"type" binding:"omitempty,oneof=numeric scale"`
}

// MetricResponse represents a metric in API responses.
type MetricResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Points      float64 `json:"points"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID           string           `json:"id"`
	Label        string           `json:"label"`
	Color        string           `json:"color"`
	Score        float64          `json:"score"`
	ScoreDisplay string           `json:"score_display"`
	Metrics      []MetricResponse `json:"metrics"`
}

// HistoryPointResponse represents a history point in API responses.
type HistoryPointResponse struct {
	Date         string  `json:"date"`
	TotalScore   float64 `json:"total_score"`
	Assets       float64 `json:"assets"`
	Health       float64 `json:"health"`
	Cognition    float64 `json:"cognition"`
	Contribution float64 `json:"contribution"`
}

// LifeIndexResponse represents the dashboard response.
type LifeIndexResponse struct {
	TotalIndex        float64            `json:"total_index"`
	TotalIndexDisplay string             `json:"total_index_display"`
	Categories        []CategoryResponse `json:"categories"`
	LastUpdated       string             `json:"last_updated"`
	HistoryCount      int                `json:"history_count"`
	AIAvailable       bool               `json:"ai_available"`
}

// UpdateMetricsResponse represents the response after a metric update.
type UpdateMetricsResponse struct {
	Category          CategoryResponse     `json:"category"`
	TotalIndex        float64              `json:"total_index"`
	TotalIndexDisplay string               `json:"total_index_display"`
	LatestPoint       HistoryPointResponse `json:"latest_point"`
}

// HistoryResponse represents the history response.
type HistoryResponse struct {
	Points     []HistoryPointResponse `json:"points"`
	Limit      int                    `json:"limit"`
	TotalIndex float64                `json:"total_index"`
}

// FormatScore renders a score with two decimals for display.
func FormatScore(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ToMetricInputs converts request metrics to use case input.
func (r UpdateMetricsRequest) ToMetricInputs() []lifeindex.MetricInput {
	inputs := make([]lifeindex.MetricInput, len(r.Metrics))
	for i, m := range r.Metrics {
		inputs[i] = lifeindex.MetricInput{
			ID:          m.ID,
			Name:        m.Name,
			Value:       m.Value,
			Target:      m.Target,
			Unit:        m.Unit,
			Type:        m.Type,
			Description: m.Description,
		}
	}
	return inputs
}

// ToCategoryResponse converts a domain category to a CategoryResponse DTO.
func ToCategoryResponse(c entity.CategoryData) CategoryResponse {
	metrics := make([]MetricResponse, len(c.Metrics))
	for i, m := range c.Metrics {
		metrics[i] = MetricResponse{
			ID:          m.ID,
			Name:        m.Name,
			Value:       m.Value,
			Target:      m.Target,
			Unit:        m.Unit,
			Type:        string(m.Type),
			Description: m.Description,
			Points:      m.Points(),
		}
	}
	return CategoryResponse{
		ID:           string(c.ID),
		Label:        c.Label,
		Color:        c.Color,
		Score:        c.Score,
		ScoreDisplay: FormatScore(c.Score),
		Metrics:      metrics,
	}
}

// ToHistoryPointResponse converts a domain history point to its DTO.
func ToHistoryPointResponse(p entity.HistoryPoint) HistoryPointResponse {
	return HistoryPointResponse{
		Date:         p.Date.UTC().Format(time.RFC3339),
		TotalScore:   p.TotalScore,
		Assets:       p.Assets,
		Health:       p.Health,
		Cognition:    p.Cognition,
		Contribution: p.Contribution,
	}
}

// ToLifeIndexResponse converts a GetDashboardOutput to a LifeIndexResponse DTO.
func ToLifeIndexResponse(output *lifeindex.GetDashboardOutput, aiAvailable bool) LifeIndexResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = ToCategoryResponse(c)
	}
	return LifeIndexResponse{
		TotalIndex:        output.TotalIndex,
		TotalIndexDisplay: FormatScore(output.TotalIndex),
		Categories:        categories,
		LastUpdated:       output.LastUpdated.UTC().Format(time.RFC3339),
		HistoryCount:      output.HistoryCount,
		AIAvailable:       aiAvailable,
	}
}

// ToUpdateMetricsResponse converts an UpdateMetricsOutput to its DTO.
func ToUpdateMetricsResponse(output *lifeindex.UpdateMetricsOutput) UpdateMetricsResponse {
	return UpdateMetricsResponse{
		Category:          ToCategoryResponse(output.Category),
		TotalIndex:        output.TotalIndex,
		TotalIndexDisplay: FormatScore(output.TotalIndex),
		LatestPoint:       ToHistoryPointResponse(output.LatestPoint),
	}
}

// ToHistoryResponse converts a GetHistoryOutput to its DTO.
func ToHistoryResponse(output *lifeindex.GetHistoryOutput) HistoryResponse {
	points := make([]HistoryPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = ToHistoryPointResponse(p)
	}
	return HistoryResponse{
		Points:     points,
		Limit:      output.Limit,
		TotalIndex: output.TotalIndex,
	}
}
