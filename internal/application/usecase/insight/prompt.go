// Package insight contains the use cases that turn the life state into a
// natural-language report.
package insight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/life-index/backend/internal/domain/entity"
)

// Summary is the condensed view of the state embedded in the prompt.
type Summary struct {
	TotalIndex float64           `json:"totalIndex"`
	Categories []CategorySummary `json:"categories"`
}

// CategorySummary condenses one category for the prompt.
type CategorySummary struct {
	Name       string  `json:"name"`
	Points     float64 `json:"points"`
	Components string  `json:"components"`
}

// BuildSummary condenses the state. The total is taken from the latest
// history point. Without history it is the live total, not zero.
func BuildSummary(state *entity.LifeState) Summary {
	total := state.TotalIndex()
	if latest, ok := state.LatestHistoryPoint(); ok {
		total = latest.TotalScore
	}

	categories := state.Categories.All()
	summary := Summary{
		TotalIndex: total,
		Categories: make([]CategorySummary, 0, len(categories)),
	}
	for _, c := range categories {
		components := make([]string, 0, len(c.Metrics))
		for _, m := range c.Metrics {
			components = append(components, fmt.Sprintf("%s: %s %s (Ref: %s)",
				m.Name, formatNumber(m.Value), m.Unit, formatNumber(m.Target)))
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			Name:       c.Label,
			Points:     c.Score,
			Components: strings.Join(components, ", "),
		})
	}
	return summary
}

// BuildPrompt renders the report prompt for the given state.
func BuildPrompt(state *entity.LifeState) (string, error) {
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildSummary(state)); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`You are the Chief Life Officer and a Financial Analyst for a "Life Index" (an uncapped, weighted index similar to the S&P 500, but for personal life).

Current Market Data:
`)
	sb.Write(bytes.TrimRight(data.Bytes(), "\n"))
	sb.WriteString(`

Context:
- This index is UNBOUNDED (no max score). It grows as the user accumulates value in Assets, Health, Cognition, and Contribution.
- Each component is weighted: "Ref" is the value required to generate 100 index points.

Task:
1. Provide a "Market Report". Is the index Bullish (growing) or Bearish?
2. Analyze the portfolio diversity (Balance between the 4 sectors).
3. Identify "Undervalued Assets" (areas with low points relative to others).
4. Give 3 "Buy" recommendations (high-ROI actions) to boost the index.

Style: Financial news anchor meets Stoic philosopher. High energy, metaphors about liquidity/dividends/compound interest. Keep it under 250 words.
`)
	return sb.String(), nil
}

// formatNumber prints a number without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
