// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Category display colors.
const (
	ColorAssets       = "#10b981"
	ColorHealth       = "#ef4444"
	ColorCognition    = "#3b82f6"
	ColorContribution = "#eab308"
)

// NewDefaultLifeState returns the seeded state used when nothing has been
// stored yet. Scores start at zero and are filled in by Reconcile.
func NewDefaultLifeState(now time.Time) *LifeState {
	return &LifeState{
		Categories: Categories{
			Assets: CategoryData{
				ID:    CategoryAssets,
				Label: "Assets & Skills",
				Color: ColorAssets,
				Metrics: []Metric{
					{ID: "m1", Name: "Liquid Cash", Value: 15000, Target: 10000, Unit: "$", Type: MetricTypeNumeric, Description: "Reference: $10k = 100pts"},
					{ID: "m2", Name: "Investments", Value: 60000, Target: 50000, Unit: "$", Type: MetricTypeNumeric, Description: "Reference: $50k = 100pts"},
					{ID: "m3", Name: "Skill Value", Value: 7, Target: 5, Unit: "Lvl", Type: MetricTypeScale, Description: "Reference: Lvl 5 = 100pts"},
				},
			},
			Health: CategoryData{
				ID:    CategoryHealth,
				Label: "Health & Eudaimonia",
				Color: ColorHealth,
				Metrics: []Metric{
					{ID: "h1", Name: "Sleep Quality", Value: 7.5, Target: 7, Unit: "/10", Type: MetricTypeScale},
					{ID: "h2", Name: "Exercise", Value: 180, Target: 150, Unit: "mins", Type: MetricTypeNumeric},
					{ID: "h3", Name: "Eudaimonia", Value: 6, Target: 5, Unit: "/10", Type: MetricTypeScale},
				},
			},
			Cognition: CategoryData{
				ID:    CategoryCognition,
				Label: "Cognition & Wisdom",
				Color: ColorCognition,
				Metrics: []Metric{
					{ID: "c1", Name: "Deep Reading", Value: 3, Target: 2, Unit: "hrs/wk", Type: MetricTypeNumeric},
					{ID: "c2", Name: "Learning Index", Value: 6, Target: 5, Unit: "/10", Type: MetricTypeScale},
					{ID: "c3", Name: "Critical Thinking", Value: 7, Target: 6, Unit: "/10", Type: MetricTypeScale},
				},
			},
			Contribution: CategoryData{
				ID:    CategoryContribution,
				Label: "Contribution & Connection",
				Color: ColorContribution,
				Metrics: []Metric{
					{ID: "s1", Name: "Family Time", Value: 8, Target: 6, Unit: "hrs/wk", Type: MetricTypeNumeric},
					{ID: "s2", Name: "Social Impact", Value: 4, Target: 5, Unit: "/10", Type: MetricTypeScale},
					{ID: "s3", Name: "Relationships", Value: 8, Target: 7, Unit: "/10", Type: MetricTypeScale},
				},
			},
		},
		History:     []HistoryPoint{},
		LastUpdated: now.UTC(),
	}
}
