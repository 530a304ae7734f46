// Package chart renders the score history as a standalone HTML page.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/domain/entity"
)

// NowLabel is the x-axis label of the single point drawn when there is no
// history yet.
const NowLabel = "Now"

const dateLabelLayout = "Jan 2 15:04"

// RenderHistory writes a stacked area chart of the four category scores.
// Without history a single point at the live scores is drawn.
func RenderHistory(w io.Writer, history *lifeindex.GetHistoryOutput) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Life Index", Theme: "dark", Width: "100%", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Life Index",
			Subtitle: fmt.Sprintf("total=%.2f points=%d", history.TotalIndex, len(history.Points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Index points"}),
	)

	labels, series := historySeries(history)
	line.SetXAxis(labels)
	for _, c := range history.Categories {
		line.AddSeries(c.Label, series[c.ID],
			charts.WithLineChartOpts(opts.LineChart{Stack: "total", Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Color}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render history chart: %w", err)
	}
	return nil
}

// historySeries returns the x-axis labels and the per-category values.
func historySeries(history *lifeindex.GetHistoryOutput) ([]string, map[entity.CategoryID][]opts.LineData) {
	series := make(map[entity.CategoryID][]opts.LineData, len(history.Categories))

	if len(history.Points) == 0 {
		for _, c := range history.Categories {
			series[c.ID] = []opts.LineData{{Value: c.Score}}
		}
		return []string{NowLabel}, series
	}

	labels := make([]string, len(history.Points))
	for i, p := range history.Points {
		labels[i] = p.Date.UTC().Format(dateLabelLayout)
		for _, c := range history.Categories {
			series[c.ID] = append(series[c.ID], opts.LineData{Value: p.Score(c.ID)})
		}
	}
	return labels, series
}
