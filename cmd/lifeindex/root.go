package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/life-index/backend/config"
	"github.com/life-index/backend/internal/infra/dependency"
)

// cliApp carries the global flags and the wired application for one run.
type cliApp struct {
	output  string
	verbose bool

	injector   *dependency.Injector
	closeStore func() error
	services   dependency.Services
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithServices(dependency.Services{})
}

func newRootCmdWithServices(services dependency.Services) *cobra.Command {
	app := &cliApp{services: services}

	rootCmd := &cobra.Command{
		Use:   "lifeindex",
		Short: "Life Index command line tool",
		Long: `lifeindex reads and updates the Life Index from the terminal.

It uses the same state store as the API server, selected with
STATE_STORE_DRIVER (sqlite, postgres, redis, memory).

Commands:
  show         Show the index and every category
  history      Show the score history
  set-metrics  Replace the metrics of a category from a YAML file
  add-metric   Append a new metric to a category
  insight      Generate an AI market report`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.output, "output", "o", "table", "Output format (json, table, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newShowCmd(app),
		newHistoryCmd(app),
		newSetMetricsCmd(app),
		newAddMetricCmd(app),
		newInsightCmd(app),
	)

	return rootCmd
}

// setup installs the logger and wires the application.
func (a *cliApp) setup(ctx context.Context) error {
	switch a.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	store, driver, closeStore := dependency.OpenStateStoreOrMemory(cfg)
	a.closeStore = closeStore
	a.injector = dependency.NewInjector(ctx, cfg, store, driver, a.services)
	return nil
}

func (a *cliApp) close() error {
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.closeStore = nil
	return err
}
