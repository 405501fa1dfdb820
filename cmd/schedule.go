package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forecast/renderer"
	"github.com/google/subcommands"
)

type scheduleCmd struct {
	raw bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the timeline of a scenario without running it" }
func (*scheduleCmd) Usage() string {
	return `fcast schedule [-raw]

  Displays every date of the scenario timeline: whether balances are
  recorded that day, and the transfers settling on it in settlement order.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer logger.Sync()

	m, err := DecodeModel(cfg.Scenario, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := m.Schedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot build the schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	printOutput(renderer.ScheduleMarkdown(s), c.raw)
	return subcommands.ExitSuccess
}
