// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// MetricType tags how a metric is measured. It is descriptive only and does
// not change how the metric is scored.
type MetricType string

const (
	MetricTypeNumeric MetricType = "numeric"
	MetricTypeScale   MetricType = "scale"
)

// PointsPerTarget is the number of index points a metric earns when its value
// equals its target.
const PointsPerTarget = 100.0

// Default values for a freshly added metric.
const (
	DefaultMetricName   = "New Component"
	DefaultMetricTarget = 100.0
	DefaultMetricUnit   = "units"
)

// Metric is a single tracked quantity within a category.
type Metric struct {
	ID          string
	Name        string
	Value       float64
	Target      float64 // Reference value worth PointsPerTarget points
	Unit        string
	Type        MetricType
	Description string
}

// NewMetric creates a metric with the defaults used when a user adds a new
// component to a category.
func NewMetric() Metric {
	return Metric{
		ID:          uuid.NewString(),
		Name:        DefaultMetricName,
		Value:       0,
		Target:      DefaultMetricTarget,
		Unit:        DefaultMetricUnit,
		Type:        MetricTypeNumeric,
		Description: "Reference: 100 units = 100 pts",
	}
}

// EffectiveTarget returns the target used for scoring. A zero target is
// treated as 1; the stored target is never changed.
func (m Metric) EffectiveTarget() float64 {
	if m.Target == 0 {
		return 1
	}
	return m.Target
}

// Points returns the metric's contribution to its category score.
// The result is uncapped in both directions.
func (m Metric) Points() float64 {
	return (m.Value / m.EffectiveTarget()) * PointsPerTarget
}

// IsValid reports whether t is a known metric type.
func (t MetricType) IsValid() bool {
	return t == MetricTypeNumeric || t == MetricTypeScale
}

// ScoreMetrics reduces a sequence of metrics to a category score: the sum of
// each metric's points. An empty sequence scores exactly 0. No rounding.
func ScoreMetrics(metrics []Metric) float64 {
	total := 0.0
	for _, m := range metrics {
		total += m.Points()
	}
	return total
}
