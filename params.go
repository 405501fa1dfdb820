package forecast

import (
	"fmt"

	"github.com/etnz/forecast/date"
)

// Parameters of a model timeline.
type Parameters struct {
	// Start of the timeline. When zero, the earliest date of the model is used.
	Start date.Date
	// End of the timeline. When zero, the latest date of the model is used.
	End date.Date
	// Record is the frequency at which the entities history is recorded.
	Record Frequency
	// Currency is the ISO 4217 code used to present amounts.
	Currency string
}

// SetRecordFrequency sets the history record frequency. Weekly and Biweekly
// are valid transfer frequencies but cannot be used to record history.
func (m *Model) SetRecordFrequency(f Frequency) error {
	if !f.Recordable() {
		return fmt.Errorf("%w: %v, want one of %v", ErrRecordFrequency, f, RecordFrequencies())
	}
	m.Params.Record = f
	return nil
}

// SetEndDate pins the end of the timeline.
func (m *Model) SetEndDate(d date.Date) { m.Params.End = d }

// ClearEndDate unpins the end of the timeline, it is derived from the model dates again.
func (m *Model) ClearEndDate() { m.Params.End = date.Date{} }

// SetStartDate pins the start of the timeline.
func (m *Model) SetStartDate(d date.Date) { m.Params.Start = d }

// Timeline returns the timeline range: the pinned dates if any, otherwise
// the earliest and latest dates referenced by the entities and transfers.
func (m *Model) Timeline() (date.Range, error) {
	r := date.Range{From: m.Params.Start, To: m.Params.End}
	if r.From.IsZero() {
		r.From = m.minDate()
	}
	if r.To.IsZero() {
		r.To = m.maxDate()
	}
	if r.From.IsZero() || r.To.IsZero() {
		return r, ErrEmptyTimeline
	}
	if !r.Valid() {
		return r, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	return r, nil
}

// minDate returns the earliest entity start or transfer start.
func (m *Model) minDate() date.Date {
	var earliest date.Date
	visit := func(d date.Date) {
		if d.IsZero() {
			return
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	for e := range m.Entities.All() {
		if e.Kind != Chequing {
			visit(e.Start)
		}
	}
	for t := range m.Transfers.All() {
		first, _ := t.Bounds()
		visit(first)
	}
	return earliest
}

// maxDate returns the latest entity start, one-time transfer date or recurring transfer end.
func (m *Model) maxDate() date.Date {
	var latest date.Date
	visit := func(d date.Date) {
		if d.IsZero() {
			return
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}
	for e := range m.Entities.All() {
		if e.Kind != Chequing {
			visit(e.Start)
		}
	}
	for t := range m.Transfers.All() {
		_, last := t.Bounds()
		visit(last)
	}
	return latest
}
