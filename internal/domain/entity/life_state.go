// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// HistoryLimit is the number of most recent history points kept in state.
const HistoryLimit = 30

// HistoryPoint is an immutable snapshot of all scores at one moment.
type HistoryPoint struct {
	Date         time.Time
	TotalScore   float64
	Assets       float64
	Health       float64
	Cognition    float64
	Contribution float64
}

// Score returns the category score recorded in the point.
func (p HistoryPoint) Score(id CategoryID) float64 {
	switch id {
	case CategoryAssets:
		return p.Assets
	case CategoryHealth:
		return p.Health
	case CategoryCognition:
		return p.Cognition
	case CategoryContribution:
		return p.Contribution
	default:
		return 0
	}
}

// LifeState is the root aggregate: four categories, a bounded history and the
// time of the last mutation.
type LifeState struct {
	Categories  Categories
	History     []HistoryPoint // Oldest first, at most HistoryLimit entries
	LastUpdated time.Time
}

// TotalIndex returns the composite index computed live from the categories.
func (s *LifeState) TotalIndex() float64 {
	return s.Categories.Total()
}

// LatestHistoryPoint returns the most recent history point, if any.
func (s *LifeState) LatestHistoryPoint() (HistoryPoint, bool) {
	if len(s.History) == 0 {
		return HistoryPoint{}, false
	}
	return s.History[len(s.History)-1], true
}

// Clone returns a deep copy of the state.
func (s *LifeState) Clone() *LifeState {
	history := make([]HistoryPoint, len(s.History))
	copy(history, s.History)
	return &LifeState{
		Categories:  s.Categories.Clone(),
		History:     history,
		LastUpdated: s.LastUpdated,
	}
}

// ApplyMetricUpdate replaces the metrics of one category and returns the new
// state. The receiver is left untouched. The category score is recomputed, a
// history point is appended (evicting the oldest beyond HistoryLimit) and
// LastUpdated is set to now. An unknown id returns an unchanged copy.
func (s *LifeState) ApplyMetricUpdate(id CategoryID, metrics []Metric, now time.Time) *LifeState {
	next := s.Clone()
	slot := next.Categories.Get(id)
	if slot == nil {
		return next
	}
	*slot = slot.WithMetrics(metrics)

	point := HistoryPoint{
		Date:         now,
		TotalScore:   next.Categories.Total(),
		Assets:       next.Categories.Assets.Score,
		Health:       next.Categories.Health.Score,
		Cognition:    next.Categories.Cognition.Score,
		Contribution: next.Categories.Contribution.Score,
	}
	next.History = appendBounded(next.History, point, HistoryLimit)
	next.LastUpdated = now
	return next
}

// Reconcile recomputes every category score from its metrics. It returns the
// corrected state and whether any stored score differed. Calling it again on
// its own output reports no change.
func (s *LifeState) Reconcile() (*LifeState, bool) {
	next := s.Clone()
	changed := false
	for _, id := range CategoryIDs {
		slot := next.Categories.Get(id)
		score := ScoreMetrics(slot.Metrics)
		if score != slot.Score {
			slot.Score = score
			changed = true
		}
	}
	if !changed {
		return s, false
	}
	return next, true
}

// TrimHistory drops the oldest points so that at most HistoryLimit remain.
func (s *LifeState) TrimHistory() {
	if len(s.History) > HistoryLimit {
		s.History = append([]HistoryPoint(nil), s.History[len(s.History)-HistoryLimit:]...)
	}
}

func appendBounded(history []HistoryPoint, point HistoryPoint, limit int) []HistoryPoint {
	history = append(history, point)
	if len(history) > limit {
		history = append([]HistoryPoint(nil), history[len(history)-limit:]...)
	}
	return history
}
