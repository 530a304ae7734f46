package chart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/domain/entity"
)

func historyOutput(points []entity.HistoryPoint) *lifeindex.GetHistoryOutput {
	state, _ := entity.NewDefaultLifeState(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).Reconcile()
	return &lifeindex.GetHistoryOutput{
		Points:     points,
		Categories: state.Categories.All(),
		Limit:      entity.HistoryLimit,
		TotalIndex: state.TotalIndex(),
	}
}

func TestHistorySeries_NoHistory(t *testing.T) {
	out := historyOutput(nil)

	labels, series := historySeries(out)

	if len(labels) != 1 || labels[0] != NowLabel {
		t.Fatalf("expected a single %q label, got %v", NowLabel, labels)
	}
	var total float64
	for _, c := range out.Categories {
		data := series[c.ID]
		if len(data) != 1 {
			t.Fatalf("category %s: expected 1 value, got %d", c.ID, len(data))
		}
		total += data[0].Value.(float64)
	}
	if total != out.TotalIndex {
		t.Errorf("expected stacked total %v, got %v", out.TotalIndex, total)
	}
}

func TestHistorySeries_WithHistory(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	out := historyOutput([]entity.HistoryPoint{
		{Date: base, TotalScore: 10, Assets: 1, Health: 2, Cognition: 3, Contribution: 4},
		{Date: base.Add(24 * time.Hour), TotalScore: 20, Assets: 5, Health: 5, Cognition: 5, Contribution: 5},
	})

	labels, series := historySeries(out)

	if len(labels) != 2 || labels[0] != "Apr 1 09:30" {
		t.Fatalf("unexpected labels %v", labels)
	}
	if got := series[entity.CategoryCognition][0].Value; got != 3.0 {
		t.Errorf("expected cognition 3, got %v", got)
	}
	if got := series[entity.CategoryAssets][1].Value; got != 5.0 {
		t.Errorf("expected assets 5, got %v", got)
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, historyOutput(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, fragment := range []string{"<html", "Eudaimonia", NowLabel, "#10b981"} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected chart to contain %q", fragment)
		}
	}
}
