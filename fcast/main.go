package main

import (
	"context"
	"flag"
	"os"
	"path"
	"slices"

	"github.com/etnz/forecast/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	scenarios := predict.Files("*.json")
	raw := map[string]complete.Predictor{"raw": predict.Nothing}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"run":      {Flags: map[string]complete.Predictor{"raw": predict.Nothing, "history": predict.Nothing}, Args: scenarios},
			"schedule": {Flags: raw},
			"history":  {Flags: map[string]complete.Predictor{"e": predict.Something, "raw": predict.Nothing}},
			"export": {Flags: map[string]complete.Predictor{
				"q":      predict.Something,
				"jsonl":  predict.Nothing,
				"sqlite": predict.Files("*.db"),
				"name":   predict.Something,
			}},
			"frequencies": {Flags: raw},
		},
		Flags: map[string]complete.Predictor{
			"scenario": scenarios,
			"currency": predict.Something,
			"record":   predict.Set{"Annually", "Semiannually", "Quarterly", "Monthly"},
			"v":        predict.Nothing,
		},
	}
}

func main() {
	// completes and exits when invoked by the shell.
	completion().Complete("fcast")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !slices.Contains(cmd.Commands, sub) && !slices.Contains([]string{"help", "flags", "commands"}, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
