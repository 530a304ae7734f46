package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/life-index/backend/internal/integration/chart"
)

func newHistoryCmd(app *cliApp) *cobra.Command {
	var chartPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the score history",
		Long: `Show the most recent history points, oldest first.

With --chart the history is also written as an HTML stacked area chart.

Examples:
  lifeindex history
  lifeindex history --chart history.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.injector.GetHistory.Execute(cmd.Context())
			if err != nil {
				return err
			}

			if chartPath != "" {
				if err := writeChart(chartPath, func(w io.Writer) error {
					return chart.RenderHistory(w, out)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", chartPath)
			}

			views := toHistoryViews(out.Points)
			return render(cmd.OutOrStdout(), app.output, views, func(w io.Writer) error {
				return writeHistoryTable(w, views)
			})
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "", "Write an HTML chart to this file")
	return cmd
}

func writeChart(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
