// Package cmd implements the fcast command line: it reads scenario files,
// runs them and renders the recorded histories.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/forecast"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "simulation")
	c.Register(&scheduleCmd{}, "simulation")
	c.Register(&historyCmd{}, "simulation")
	c.Register(&exportCmd{}, "simulation")

	c.Register(&frequenciesCmd{}, "reference")
}

// Commands lists the names of the registered subcommands.
var Commands = []string{"run", "schedule", "history", "export", "frequencies"}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var scenarioFile = flag.String("scenario", "", "Path to the scenario file (JSON). Defaults to $FCAST_SCENARIO.")
var currency = flag.String("currency", "", "Currency used to present amounts, overrides the scenario one. Defaults to $FCAST_CURRENCY.")
var record = flag.String("record", "", "History record frequency, overrides the scenario one. Defaults to $FCAST_RECORD.")
var Verbose = flag.Bool("v", false, "Log the simulation steps to stderr. Defaults to $FCAST_VERBOSE.")

// Config holds the global settings. They are read from the environment, and
// the global flags, when set, take precedence.
type Config struct {
	Scenario string `env:"FCAST_SCENARIO" envDefault:"scenario.json"`
	Currency string `env:"FCAST_CURRENCY"`
	Record   string `env:"FCAST_RECORD"`
	Verbose  bool   `env:"FCAST_VERBOSE"`
}

const (
	EnvScenario = "FCAST_SCENARIO"
	EnvCurrency = "FCAST_CURRENCY"
	EnvRecord   = "FCAST_RECORD"
	EnvVerbose  = "FCAST_VERBOSE"
)

// Settings returns the configuration from the environment and the global flags.
func Settings() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	if *scenarioFile != "" {
		cfg.Scenario = *scenarioFile
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *record != "" {
		cfg.Record = *record
	}
	if *Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// Logger returns a development logger when verbose, a no-op one otherwise.
func (cfg Config) Logger() *zap.Logger {
	if !cfg.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// DecodeModel reads the scenario file at path and applies the configuration overrides.
func DecodeModel(path string, cfg Config, logger *zap.Logger) (*forecast.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open scenario: %w", err)
	}
	defer f.Close()

	m, err := forecast.DecodeScenario(f, forecast.WithLogger(logger.With(zap.String("scenario", path))))
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario %q: %w", path, err)
	}
	if cfg.Currency != "" {
		m.Params.Currency = strings.ToUpper(cfg.Currency)
	}
	if cfg.Record != "" {
		freq, err := forecast.ParseFrequency(cfg.Record)
		if err != nil {
			return nil, err
		}
		if err := m.SetRecordFrequency(freq); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RunScenario reads and runs the scenario file at path.
func RunScenario(ctx context.Context, path string, cfg Config, logger *zap.Logger) (*forecast.Model, error) {
	m, err := DecodeModel(path, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := m.Run(ctx); err != nil {
		return nil, fmt.Errorf("cannot run scenario %q: %w", path, err)
	}
	return m, nil
}

// setup is the common start of subcommands: settings and logger.
func setup() (Config, *zap.Logger, subcommands.ExitStatus) {
	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, nil, subcommands.ExitUsageError
	}
	return cfg, cfg.Logger(), subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, or prints it as is when
// it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printOutput prints markdown raw or rendered.
func printOutput(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	printMarkdown(md)
}
