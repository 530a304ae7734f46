package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

// metricsFile is the YAML document accepted by set-metrics.
type metricsFile struct {
	Metrics []struct {
		ID          string  `yaml:"id"`
		Name        string  `yaml:"name"`
		Value       float64 `yaml:"value"`
		Target      float64 `yaml:"target"`
		Unit        string  `yaml:"unit"`
		Type        string  `yaml:"type"`
		Description string  `yaml:"description"`
	} `yaml:"metrics"`
}

func parseMetricsFile(data []byte) ([]lifeindex.MetricInput, error) {
	var file metricsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse metrics file: %w", err)
	}

	inputs := make([]lifeindex.MetricInput, len(file.Metrics))
	for i, m := range file.Metrics {
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
	return inputs, nil
}

func newSetMetricsCmd(app *cliApp) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set-metrics <category>",
		Short: "Replace the metrics of a category",
		Long: `Replace every metric of a category with the ones listed in a YAML file.
The category score and the index are recomputed and a history point is recorded.

File format:
  metrics:
    - id: h1
      name: Sleep Quality
      value: 7.5
      target: 7
      unit: /10
      type: scale

Examples:
  lifeindex set-metrics health -f health.yaml
  cat health.yaml | lifeindex set-metrics health -f -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read metrics file: %w", err)
			}

			inputs, err := parseMetricsFile(data)
			if err != nil {
				return err
			}

			out, err := app.injector.UpdateMetrics.Execute(cmd.Context(), lifeindex.UpdateMetricsInput{
				CategoryID: args[0],
				Metrics:    inputs,
			})
			if err != nil {
				return err
			}

			return renderUpdate(cmd.OutOrStdout(), app.output, out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the metrics, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func renderUpdate(w io.Writer, format string, out *lifeindex.UpdateMetricsOutput) error {
	view := toCategoryView(out.Category)
	return render(w, format, view, func(w io.Writer) error {
		fmt.Fprintf(w, "%s now scores %s\n", view.Label, view.Score)
		return writeIndexTable(w, indexView{
			TotalIndex:  dto.FormatScore(out.TotalIndex),
			LastUpdated: out.LatestPoint.Date.UTC().Format(time.RFC3339),
			History:     len(out.State.History),
			Categories:  []categoryView{view},
		})
	})
}
