package main

import (
	"github.com/spf13/cobra"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
)

func newAddMetricCmd(app *cliApp) *cobra.Command {
	var (
		name, unit, metricType string
		value, target          float64
	)

	cmd := &cobra.Command{
		Use:   "add-metric <category>",
		Short: "Append a metric to a category",
		Long: `Append a new metric to a category. Flags that are not given keep the
defaults of a new component: "New Component", value 0, reference 100 units.

Examples:
  lifeindex add-metric cognition
  lifeindex add-metric health --name "Meditation" --value 20 --target 30 --unit mins`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := lifeindex.AddMetricInput{CategoryID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("name") {
				input.Name = &name
			}
			if flags.Changed("value") {
				input.Value = &value
			}
			if flags.Changed("target") {
				input.Target = &target
			}
			if flags.Changed("unit") {
				input.Unit = &unit
			}
			if flags.Changed("type") {
				input.Type = &metricType
			}

			out, err := app.injector.AddMetric.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			return renderUpdate(cmd.OutOrStdout(), app.output, out)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Metric name")
	cmd.Flags().Float64Var(&value, "value", 0, "Current value")
	cmd.Flags().Float64Var(&target, "target", 0, "Reference value worth 100 points")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit label")
	cmd.Flags().StringVar(&metricType, "type", "", "Metric type (numeric, scale)")
	return cmd
}
