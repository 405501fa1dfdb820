package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/forecast"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the totals of a report: net worth and accruals at
// each record date, and the final value of every entity.
func SummaryMarkdown(r *forecast.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Forecast from %s to %s", r.Range.From, r.Range.To))
	doc.PlainText(fmt.Sprintf("Recorded %s, amounts in %s.", r.Record, r.Currency))

	doc.H2("Net Worth")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Net Worth", "Period Accruals", "Year Accruals"},
		Rows:   [][]string{},
	}
	for _, t := range r.Totals() {
		table.Rows = append(table.Rows, []string{
			t.Date.String(),
			money(r, t.NetWorth),
			signed(r, t.PeriodAccruals),
			signed(r, t.YearAccruals),
		})
	}
	doc.Table(table)

	doc.H2("Entities")
	entities := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Entity", "Kind", "Final Value"},
		Rows:   [][]string{},
	}
	for _, e := range r.Entities {
		final := "-"
		if n := len(e.Snapshots); n > 0 {
			final = money(r, e.Snapshots[n-1].Value)
		}
		entities.Rows = append(entities.Rows, []string{e.Label(), e.Kind.String(), final})
	}
	doc.Table(entities)

	return doc.String()
}
