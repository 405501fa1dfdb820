package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"

	"github.com/etnz/forecast"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type frequenciesCmd struct {
	raw bool
}

func (*frequenciesCmd) Name() string     { return "frequencies" }
func (*frequenciesCmd) Synopsis() string { return "list the transfer and record frequencies" }
func (*frequenciesCmd) Usage() string {
	return `fcast frequencies [-raw]

  Lists the frequencies accepted in scenario files, and which of them can
  be used to record history.
`
}

func (c *frequenciesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering.")
}

func (c *frequenciesCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	printOutput(frequenciesMarkdown(), c.raw)
	return subcommands.ExitSuccess
}

func frequenciesMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Frequencies")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignCenter},
		Header:    []string{"Frequency", "Step", "Record"},
		Rows:      [][]string{},
	}
	for _, f := range forecast.Frequencies() {
		unit, n := f.Step()
		recordable := ""
		if f.Recordable() {
			recordable = "yes"
		}
		table.Rows = append(table.Rows, []string{f.String(), stepLabel(unit.String(), n), recordable})
	}
	doc.Table(table)
	return doc.String()
}

func stepLabel(unit string, n int) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
