package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	entities string
	raw      bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display entity values history" }
func (*historyCmd) Usage() string {
	return `fcast history [-e <id>[,<id>...]] [-raw]

  Runs the scenario and displays the recorded values and accruals of the
  given entities, or of every entity.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entities, "e", "", "comma separated ids of the entities to report on")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer logger.Sync()

	m, err := RunScenario(ctx, cfg.Scenario, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var ids []string
	if c.entities != "" {
		ids = strings.Split(c.entities, ",")
	}
	r := m.Report()
	for _, id := range ids {
		if _, ok := r.Entity(id); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown entity %q\n", id)
			return subcommands.ExitUsageError
		}
	}
	printOutput(renderer.HistoryMarkdown(r, ids...), c.raw)
	return subcommands.ExitSuccess
}
