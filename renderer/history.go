package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/forecast"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the recorded history of the entities of a report.
// When ids is not empty, only those entities are rendered.
func HistoryMarkdown(r *forecast.Report, ids ...string) string {
	var buf bytes.Buffer
	for _, e := range r.Entities {
		if len(ids) > 0 && !contains(ids, e.ID) {
			continue
		}
		ConditionalBlock(&buf, func(w io.Writer) bool {
			entityHistory(w, r, e)
			return len(e.Snapshots) > 0
		})
	}
	return buf.String()
}

func entityHistory(w io.Writer, r *forecast.Report, e forecast.EntityReport) {
	doc := md.NewMarkdown(w)
	doc.H1(fmt.Sprintf("History for %s", e.Label()))
	doc.PlainText(fmt.Sprintf("%s `%s`", e.Kind, e.ID))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Period Accruals", "Year Accruals"},
		Rows:   [][]string{},
	}
	for _, s := range e.Snapshots {
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			money(r, s.Value),
			signed(r, s.PeriodAccruals),
			signed(r, s.YearAccruals),
		})
	}
	doc.Table(table)
	doc.Build()
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
