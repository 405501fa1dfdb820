package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/forecast"
	md "github.com/nao1215/markdown"
)

// ScheduleMarkdown renders the dates of a schedule, with the transfers
// settling on each date in settlement order.
func ScheduleMarkdown(s *forecast.Schedule) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Schedule from %s to %s", s.Range.From, s.Range.To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignCenter,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Record", "Transfer", "From", "To", "Amount"},
		Rows:   [][]string{},
	}
	for _, on := range s.Dates() {
		event, _ := s.At(on)
		record := ""
		if event.Record {
			record = "x"
		}
		if len(event.Pending) == 0 {
			table.Rows = append(table.Rows, []string{on.String(), record, "", "", "", ""})
			continue
		}
		for _, p := range event.Pending {
			table.Rows = append(table.Rows, []string{
				on.String(),
				record,
				p.Transfer,
				p.From.String(),
				p.To.String(),
				fmt.Sprint(p.Amount),
			})
			// the record mark is shown once per date.
			record = ""
		}
	}
	doc.Table(table)

	return doc.String()
}
