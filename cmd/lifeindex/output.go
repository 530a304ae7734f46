package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/life-index/backend/internal/domain/entity"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

type metricView struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Value       float64 `json:"value" yaml:"value"`
	Target      float64 `json:"target" yaml:"target"`
	Unit        string  `json:"unit" yaml:"unit"`
	Type        string  `json:"type" yaml:"type"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Points      string  `json:"points" yaml:"points"`
}

type categoryView struct {
	ID      string       `json:"id" yaml:"id"`
	Label   string       `json:"label" yaml:"label"`
	Score   string       `json:"score" yaml:"score"`
	Metrics []metricView `json:"metrics" yaml:"metrics"`
}

type indexView struct {
	TotalIndex  string         `json:"total_index" yaml:"total_index"`
	LastUpdated string         `json:"last_updated" yaml:"last_updated"`
	History     int            `json:"history_count" yaml:"history_count"`
	Categories  []categoryView `json:"categories" yaml:"categories"`
}

type historyView struct {
	Date         string `json:"date" yaml:"date"`
	TotalScore   string `json:"total_score" yaml:"total_score"`
	Assets       string `json:"assets" yaml:"assets"`
	Health       string `json:"health" yaml:"health"`
	Cognition    string `json:"cognition" yaml:"cognition"`
	Contribution string `json:"contribution" yaml:"contribution"`
}

type insightView struct {
	Outcome   string `json:"outcome" yaml:"outcome"`
	Analysis  string `json:"analysis" yaml:"analysis"`
	EmailedTo string `json:"emailed_to,omitempty" yaml:"emailed_to,omitempty"`
}

func toCategoryView(c entity.CategoryData) categoryView {
	metrics := make([]metricView, len(c.Metrics))
	for i, m := range c.Metrics {
		metrics[i] = metricView{
			ID:          m.ID,
			Name:        m.Name,
			Value:       m.Value,
			Target:      m.Target,
			Unit:        m.Unit,
			Type:        string(m.Type),
			Description: m.Description,
			Points:      dto.FormatScore(m.Points()),
		}
	}
	return categoryView{
		ID:      string(c.ID),
		Label:   c.Label,
		Score:   dto.FormatScore(c.Score),
		Metrics: metrics,
	}
}

func toHistoryViews(points []entity.HistoryPoint) []historyView {
	views := make([]historyView, len(points))
	for i, p := range points {
		views[i] = historyView{
			Date:         p.Date.UTC().Format(time.RFC3339),
			TotalScore:   dto.FormatScore(p.TotalScore),
			Assets:       dto.FormatScore(p.Assets),
			Health:       dto.FormatScore(p.Health),
			Cognition:    dto.FormatScore(p.Cognition),
			Contribution: dto.FormatScore(p.Contribution),
		}
	}
	return views
}

// render writes v as JSON or YAML, or calls table for the table format.
func render(w io.Writer, format string, v interface{}, table func(w io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)

	default:
		return table(w)
	}
}

func writeIndexTable(w io.Writer, view indexView) error {
	fmt.Fprintf(w, "LIFE INDEX %s\n", view.TotalIndex)
	fmt.Fprintf(w, "Last updated %s, %d history points\n\n", view.LastUpdated, view.History)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tMETRIC\tVALUE\tREF\tPOINTS")
	for _, c := range view.Categories {
		fmt.Fprintf(tw, "%s\t\t\t\t%s\n", c.Label, c.Score)
		for _, m := range c.Metrics {
			fmt.Fprintf(tw, "\t%s\t%g %s\t%g\t%s\n", m.Name, m.Value, m.Unit, m.Target, m.Points)
		}
	}
	return tw.Flush()
}

func writeHistoryTable(w io.Writer, views []historyView) error {
	if len(views) == 0 {
		fmt.Fprintln(w, "No history yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTOTAL\tASSETS\tHEALTH\tCOGNITION\tCONTRIBUTION")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.Date, v.TotalScore, v.Assets, v.Health, v.Cognition, v.Contribution)
	}
	return tw.Flush()
}
