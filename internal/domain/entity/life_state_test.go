package entity

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var baseTime = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func reconciledDefault(t *testing.T) *LifeState {
	t.Helper()
	state, _ := NewDefaultLifeState(baseTime).Reconcile()
	return state
}

func TestApplyMetricUpdate_RecomputesCategoryAndTotal(t *testing.T) {
	state := reconciledDefault(t)
	metrics := []Metric{
		{ID: "h1", Value: 150, Target: 150},
		{ID: "h2", Value: 6, Target: 5},
	}
	now := baseTime.Add(time.Hour)

	next := state.ApplyMetricUpdate(CategoryHealth, metrics, now)

	if next.Categories.Health.Score != 220 {
		t.Errorf("expected health score 220, got %v", next.Categories.Health.Score)
	}

	expectedTotal := next.Categories.Assets.Score + next.Categories.Health.Score +
		next.Categories.Cognition.Score + next.Categories.Contribution.Score
	if next.TotalIndex() != expectedTotal {
		t.Errorf("expected total index %v, got %v", expectedTotal, next.TotalIndex())
	}

	if len(next.History) != 1 {
		t.Fatalf("expected 1 history point, got %d", len(next.History))
	}
	point := next.History[0]
	if !point.Date.Equal(now) {
		t.Errorf("expected history date %v, got %v", now, point.Date)
	}
	if point.TotalScore != expectedTotal {
		t.Errorf("expected history total %v, got %v", expectedTotal, point.TotalScore)
	}
	if point.Health != 220 {
		t.Errorf("expected history health 220, got %v", point.Health)
	}
	if !next.LastUpdated.Equal(now) {
		t.Errorf("expected last updated %v, got %v", now, next.LastUpdated)
	}
}

func TestApplyMetricUpdate_DoesNotMutateInput(t *testing.T) {
	state := reconciledDefault(t)
	before := state.Clone()

	_ = state.ApplyMetricUpdate(CategoryAssets, []Metric{{ID: "x", Value: 1, Target: 1}}, baseTime.Add(time.Minute))

	if diff := cmp.Diff(before, state); diff != "" {
		t.Errorf("input state changed (-before +after):\n%s", diff)
	}
}

func TestApplyMetricUpdate_LeavesOtherCategoriesUntouched(t *testing.T) {
	state := reconciledDefault(t)

	next := state.ApplyMetricUpdate(CategoryAssets, []Metric{{ID: "cash", Value: 20000, Target: 10000}}, baseTime.Add(time.Minute))

	if next.Categories.Assets.Score != 200 {
		t.Errorf("expected assets score 200, got %v", next.Categories.Assets.Score)
	}
	for _, id := range []CategoryID{CategoryHealth, CategoryCognition, CategoryContribution} {
		if diff := cmp.Diff(*state.Categories.Get(id), *next.Categories.Get(id)); diff != "" {
			t.Errorf("category %s changed (-before +after):\n%s", id, diff)
		}
	}
}

func TestApplyMetricUpdate_TotalIndexIsLive(t *testing.T) {
	state := reconciledDefault(t)
	next := state.ApplyMetricUpdate(CategoryCognition, nil, baseTime.Add(time.Minute))

	if next.Categories.Cognition.Score != 0 {
		t.Errorf("expected empty cognition to score 0, got %v", next.Categories.Cognition.Score)
	}

	// Corrupt the cached history total; the live index must not read it.
	next.History[len(next.History)-1].TotalScore = -1
	expected := next.Categories.Assets.Score + next.Categories.Health.Score + next.Categories.Contribution.Score
	if next.TotalIndex() != expected {
		t.Errorf("expected live total %v, got %v", expected, next.TotalIndex())
	}
}

func TestApplyMetricUpdate_HistoryCap(t *testing.T) {
	state := reconciledDefault(t)

	for i := 0; i < HistoryLimit+1; i++ {
		metrics := []Metric{{ID: "m", Value: float64(i), Target: 1}}
		state = state.ApplyMetricUpdate(CategoryAssets, metrics, baseTime.Add(time.Duration(i)*time.Minute))
	}

	if len(state.History) != HistoryLimit {
		t.Fatalf("expected %d history points, got %d", HistoryLimit, len(state.History))
	}

	first := state.History[0]
	if !first.Date.Equal(baseTime.Add(time.Minute)) {
		t.Errorf("expected oldest point to be the second update, got %v", first.Date)
	}
	if first.Assets != 100 {
		t.Errorf("expected oldest retained assets score 100, got %v", first.Assets)
	}
	for i := 1; i < len(state.History); i++ {
		if !state.History[i].Date.After(state.History[i-1].Date) {
			t.Fatalf("history out of order at index %d", i)
		}
	}
	last := state.History[len(state.History)-1]
	if last.Assets != float64(HistoryLimit)*100 {
		t.Errorf("expected newest assets score %v, got %v", float64(HistoryLimit)*100, last.Assets)
	}
}

func TestApplyMetricUpdate_UnknownCategory(t *testing.T) {
	state := reconciledDefault(t)

	next := state.ApplyMetricUpdate(CategoryID("wealth"), []Metric{{Value: 1, Target: 1}}, baseTime.Add(time.Minute))

	if diff := cmp.Diff(state, next); diff != "" {
		t.Errorf("expected unchanged state (-want +got):\n%s", diff)
	}
}

func TestReconcile(t *testing.T) {
	t.Run("fills in scores of the seeded state", func(t *testing.T) {
		seeded := NewDefaultLifeState(baseTime)
		state, changed := seeded.Reconcile()

		if !changed {
			t.Fatal("expected seeded state to need reconciliation")
		}
		for _, id := range CategoryIDs {
			cat := state.Categories.Get(id)
			if cat.Score != ScoreMetrics(cat.Metrics) {
				t.Errorf("category %s: expected %v, got %v", id, ScoreMetrics(cat.Metrics), cat.Score)
			}
		}
		if seeded.Categories.Assets.Score != 0 {
			t.Error("expected the input state to stay untouched")
		}
		if !state.LastUpdated.Equal(seeded.LastUpdated) {
			t.Error("expected reconciliation to keep last updated")
		}
	})

	t.Run("corrects drifted scores", func(t *testing.T) {
		state := reconciledDefault(t)
		state.Categories.Health.Score = 1

		fixed, changed := state.Reconcile()
		if !changed {
			t.Fatal("expected drift to be detected")
		}
		if fixed.Categories.Health.Score != ScoreMetrics(fixed.Categories.Health.Metrics) {
			t.Errorf("expected corrected health score, got %v", fixed.Categories.Health.Score)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		once, _ := NewDefaultLifeState(baseTime).Reconcile()
		twice, changed := once.Reconcile()

		if changed {
			t.Error("expected no change on second reconciliation")
		}
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("second reconciliation changed state (-once +twice):\n%s", diff)
		}
	})
}

func TestTrimHistory(t *testing.T) {
	state := &LifeState{}
	for i := 0; i < 45; i++ {
		state.History = append(state.History, HistoryPoint{Date: baseTime.Add(time.Duration(i) * time.Hour)})
	}

	state.TrimHistory()

	if len(state.History) != HistoryLimit {
		t.Fatalf("expected %d points, got %d", HistoryLimit, len(state.History))
	}
	if !state.History[0].Date.Equal(baseTime.Add(15 * time.Hour)) {
		t.Errorf("expected oldest retained point at hour 15, got %v", state.History[0].Date)
	}
}

func TestHistoryPoint_Score(t *testing.T) {
	p := HistoryPoint{Assets: 1, Health: 2, Cognition: 3, Contribution: 4}

	for i, id := range CategoryIDs {
		if got := p.Score(id); got != float64(i+1) {
			t.Errorf("category %s: expected %v, got %v", id, i+1, got)
		}
	}
	if p.Score(CategoryID("other")) != 0 {
		t.Error("expected zero for unknown category")
	}
}
