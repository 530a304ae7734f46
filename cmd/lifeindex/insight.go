package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/life-index/backend/internal/application/usecase/insight"
)

func newInsightCmd(app *cliApp) *cobra.Command {
	var (
		sendEmail bool
		to        string
	)

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Generate an AI market report on the index",
		Long: `Ask Gemini for a market report on the current index. Requires
GEMINI_API_KEY; without it a fixed message is printed.

With --email the report is sent through Resend to --to or REPORT_RECIPIENT.

Examples:
  lifeindex insight
  lifeindex insight --email --to me@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := insightView{}

			if sendEmail {
				out, err := app.injector.EmailReport.Execute(cmd.Context(), insight.EmailReportInput{To: to})
				if err != nil {
					return err
				}
				view.Outcome = string(out.Analysis.Outcome)
				view.Analysis = out.Analysis.Text
				view.EmailedTo = out.To
			} else {
				out := app.injector.Insight.Execute(cmd.Context())
				view.Outcome = string(out.Outcome)
				view.Analysis = out.Text
			}

			return render(cmd.OutOrStdout(), app.output, view, func(w io.Writer) error {
				fmt.Fprintln(w, view.Analysis)
				if view.EmailedTo != "" {
					fmt.Fprintf(w, "\nSent to %s\n", view.EmailedTo)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&sendEmail, "email", false, "Email the report")
	cmd.Flags().StringVar(&to, "to", "", "Report recipient (default REPORT_RECIPIENT)")
	return cmd
}
