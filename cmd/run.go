package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type runCmd struct {
	raw     bool
	history bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run scenarios and display their net worth over time" }
func (*runCmd) Usage() string {
	return `fcast run [-raw] [-history] [<scenario.json> ...]

  Runs each scenario file and displays its summary: the net worth and the
  accruals at every record date, and the final value of every entity.
  Without arguments, runs the scenario of the -scenario flag.

Usage Examples:
# Compare two scenarios.
$ fcast run rent.json buy.json

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering.")
	f.BoolVar(&c.history, "history", false, "Also display the history of every entity.")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer logger.Sync()

	files := f.Args()
	if len(files) == 0 {
		files = []string{cfg.Scenario}
	}

	models, err := RunScenarios(ctx, files, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var out strings.Builder
	for i, m := range models {
		if len(models) > 1 {
			fmt.Fprintf(&out, "# %s\n\n", files[i])
		}
		r := m.Report()
		out.WriteString(renderer.SummaryMarkdown(r))
		if c.history {
			out.WriteString(renderer.HistoryMarkdown(r))
		}
	}
	printOutput(out.String(), c.raw)
	return subcommands.ExitSuccess
}

// RunScenarios runs the scenario files concurrently, each in its own model.
// Models are returned in the order of files. The first failure cancels the
// other runs.
func RunScenarios(ctx context.Context, files []string, cfg Config, logger *zap.Logger) ([]*forecast.Model, error) {
	models := make([]*forecast.Model, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			m, err := RunScenario(ctx, file, cfg, logger)
			if err != nil {
				return err
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}
