package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/forecast"
	"github.com/etnz/forecast/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	query  string
	jsonl  bool
	sqlite string
	name   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "run a scenario and export its history" }
func (*exportCmd) Usage() string {
	return `fcast export [-q <jsonpath>] | [-jsonl] | [-sqlite <file.db> [-name <scenario>]]

  Runs the scenario and writes the recorded history.

  By default, the whole report is written as a JSON document on stdout. A
  JSONPath query selects a part of it. With -jsonl, one snapshot is written
  per line. With -sqlite, the history is stored in a SQLite database, under
  the scenario name, replacing a previous export of the same name.

Usage Examples:
# Net value of the house at every record date.
$ fcast export -q '$.entities[?(@.id=="house")].snapshots[*].value'

# Store two scenarios side by side.
$ fcast -scenario rent.json export -sqlite forecast.db
$ fcast -scenario buy.json export -sqlite forecast.db

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON report.")
	f.BoolVar(&c.jsonl, "jsonl", false, "Write one snapshot per line.")
	f.StringVar(&c.sqlite, "sqlite", "", "Path to a SQLite database to export to.")
	f.StringVar(&c.name, "name", "", "Scenario name in the SQLite database. Defaults to the scenario file name.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.sqlite != "" && (c.query != "" || c.jsonl) {
		fmt.Fprintln(os.Stderr, "-sqlite cannot be combined with -q or -jsonl")
		return subcommands.ExitUsageError
	}
	if c.query != "" && c.jsonl {
		fmt.Fprintln(os.Stderr, "-q cannot be combined with -jsonl")
		return subcommands.ExitUsageError
	}
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
	r := m.Report()

	switch {
	case c.sqlite != "":
		name := c.name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(cfg.Scenario), filepath.Ext(cfg.Scenario))
		}
		err = ExportSQLite(ctx, c.sqlite, name, r)
		if err == nil {
			fmt.Fprintf(os.Stderr, "Exported %q to %s\n", name, c.sqlite)
		}
	case c.jsonl:
		err = forecast.EncodeHistory(os.Stdout, r)
	default:
		err = ExportJSON(os.Stdout, r, c.query)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// ExportJSON writes the report as an indented JSON document. When query is
// not empty, only the result of that JSONPath query is written.
func ExportJSON(w io.Writer, r *forecast.Report, query string) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	var doc any = json.RawMessage(raw)
	if query != "" {
		var jobj any
		if err := json.Unmarshal(raw, &jobj); err != nil {
			return err
		}
		doc, err = jsonpath.Get(query, jobj)
		if err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportSQLite stores the report in the SQLite database at path.
func ExportSQLite(ctx context.Context, path, scenario string, r *forecast.Report) error {
	store, err := export.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.WriteReport(ctx, scenario, r)
}
