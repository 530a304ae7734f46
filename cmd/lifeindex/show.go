package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

func newShowCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show [category]",
		Short: "Show the index and its categories",
		Long: `Show the total index and the metrics of every category, or of a
single category when one is given.

Examples:
  lifeindex show
  lifeindex show health -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out, err := app.injector.GetDashboard.Execute(ctx)
			if err != nil {
				return err
			}

			view := indexView{
				TotalIndex:  dto.FormatScore(out.TotalIndex),
				LastUpdated: out.LastUpdated.UTC().Format(time.RFC3339),
				History:     out.HistoryCount,
			}

			if len(args) == 1 {
				category, err := app.injector.GetCategory.Execute(ctx, lifeindex.GetCategoryInput{CategoryID: args[0]})
				if err != nil {
					return err
				}
				view.Categories = []categoryView{toCategoryView(category.Category)}
			} else {
				for _, c := range out.Categories {
					view.Categories = append(view.Categories, toCategoryView(c))
				}
			}

			return render(cmd.OutOrStdout(), app.output, view, func(w io.Writer) error {
				return writeIndexTable(w, view)
			})
		},
	}
}
