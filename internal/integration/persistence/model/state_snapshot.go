// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/life-index/backend/internal/domain/entity"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// StateSnapshotModel represents the state_snapshots table in the database.
// Each row holds one whole LifeState document under its storage key.
type StateSnapshotModel struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(100);primaryKey"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the StateSnapshotModel.
func (StateSnapshotModel) TableName() string {
	return "state_snapshots"
}

// LifeStateDocument is the stored JSON shape of a LifeState.
type LifeStateDocument struct {
	Categories  map[string]CategoryDocument `json:"categories"`
	History     []HistoryPointDocument      `json:"history"`
	LastUpdated time.Time                   `json:"lastUpdated"`
}

// CategoryDocument is the stored JSON shape of a category.
type CategoryDocument struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Color   string           `json:"color"`
	Metrics []MetricDocument `json:"metrics"`
	Score   float64          `json:"score"`
}

// MetricDocument is the stored JSON shape of a metric.
type MetricDocument struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
}

// HistoryPointDocument is the stored JSON shape of a history point.
type HistoryPointDocument struct {
	Date         time.Time `json:"date"`
	TotalScore   float64   `json:"totalScore"`
	Assets       float64   `json:"assets"`
	Health       float64   `json:"health"`
	Cognition    float64   `json:"cognition"`
	Contribution float64   `json:"contribution"`
}

// EncodeLifeState serializes the state to its stored JSON form.
func EncodeLifeState(state *entity.LifeState) ([]byte, error) {
	data, err := json.Marshal(LifeStateFromEntity(state))
	if err != nil {
		return nil, fmt.Errorf("failed to encode life state: %w", err)
	}
	return data, nil
}

// DecodeLifeState parses a stored snapshot. Malformed documents and documents
// missing a category return ErrCorruptState. History beyond the limit is
// trimmed to the newest points.
func DecodeLifeState(data []byte) (*entity.LifeState, error) {
	var doc LifeStateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrCorruptState, err)
	}
	return doc.ToEntity()
}

// LifeStateFromEntity creates a LifeStateDocument from a domain LifeState.
func LifeStateFromEntity(state *entity.LifeState) *LifeStateDocument {
	doc := &LifeStateDocument{
		Categories:  make(map[string]CategoryDocument, len(entity.CategoryIDs)),
		History:     make([]HistoryPointDocument, len(state.History)),
		LastUpdated: state.LastUpdated,
	}
	for _, c := range state.Categories.All() {
		doc.Categories[string(c.ID)] = categoryFromEntity(c)
	}
	for i, p := range state.History {
		doc.History[i] = HistoryPointDocument{
			Date:         p.Date,
			TotalScore:   p.TotalScore,
			Assets:       p.Assets,
			Health:       p.Health,
			Cognition:    p.Cognition,
			Contribution: p.Contribution,
		}
	}
	return doc
}

// ToEntity converts a LifeStateDocument to a domain LifeState.
func (d *LifeStateDocument) ToEntity() (*entity.LifeState, error) {
	state := &entity.LifeState{
		History:     make([]entity.HistoryPoint, len(d.History)),
		LastUpdated: d.LastUpdated,
	}

	for _, id := range entity.CategoryIDs {
		c, ok := d.Categories[string(id)]
		if !ok {
			return nil, fmt.Errorf("%w: missing category %q", domainerror.ErrCorruptState, id)
		}
		if c.ID != "" && c.ID != string(id) {
			return nil, fmt.Errorf("%w: category %q stored under %q", domainerror.ErrCorruptState, c.ID, id)
		}
		*state.Categories.Get(id) = c.toEntity(id)
	}

	for i, p := range d.History {
		state.History[i] = entity.HistoryPoint{
			Date:         p.Date,
			TotalScore:   p.TotalScore,
			Assets:       p.Assets,
			Health:       p.Health,
			Cognition:    p.Cognition,
			Contribution: p.Contribution,
		}
	}
	state.TrimHistory()

	return state, nil
}

func categoryFromEntity(c entity.CategoryData) CategoryDocument {
	metrics := make([]MetricDocument, len(c.Metrics))
	for i, m := range c.Metrics {
		metrics[i] = MetricDocument{
			ID:          m.ID,
			Name:        m.Name,
			Value:       m.Value,
			Target:      m.Target,
			Unit:        m.Unit,
			Type:        string(m.Type),
			Description: m.Description,
		}
	}
	return CategoryDocument{
		ID:      string(c.ID),
		Label:   c.Label,
		Color:   c.Color,
		Metrics: metrics,
		Score:   c.Score,
	}
}

func (c CategoryDocument) toEntity(id entity.CategoryID) entity.CategoryData {
	metrics := make([]entity.Metric, len(c.Metrics))
	for i, m := range c.Metrics {
		metricType := entity.MetricType(m.Type)
		if !metricType.IsValid() {
			metricType = entity.MetricTypeNumeric
		}
		metrics[i] = entity.Metric{
			ID:          m.ID,
			Name:        m.Name,
			Value:       m.Value,
			Target:      m.Target,
			Unit:        m.Unit,
			Type:        metricType,
			Description: m.Description,
		}
	}
	return entity.CategoryData{
		ID:      id,
		Label:   c.Label,
		Color:   c.Color,
		Metrics: metrics,
		Score:   c.Score,
	}
}
