package forecast

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/forecast/date"
)

// Pending is a transfer occurrence waiting to be settled.
type Pending struct {
	Transfer string // id of the transfer definition.
	From, To Ref
	Amount   Amount
}

// Event is what happens on a timeline date.
type Event struct {
	Record  bool      // Record is true when balances are recorded at the end of that day.
	Pending []Pending // Pending transfers, in settlement order.
}

// Schedule is the chronological plan of a run: record dates and transfer
// occurrences, keyed by date.
type Schedule struct {
	Range  date.Range
	Record Frequency
	events map[date.Date]*Event
}

// BuildSchedule lays out the record dates and the transfer occurrences
// between start and end, both included.
//
// Record dates are start, end, and the end of every record period in
// between. Transfers are appended to their dates in the order of
// 'transfers', which is therefore the settlement order of same-day
// occurrences.
func BuildSchedule(start, end date.Date, record Frequency, transfers []Transfer) (*Schedule, error) {
	if !record.Recordable() {
		return nil, fmt.Errorf("%w: %v", ErrRecordFrequency, record)
	}
	r := date.Range{From: start, To: end}
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	s := &Schedule{Range: r, Record: record, events: make(map[date.Date]*Event)}

	s.event(start).Record = true
	s.event(end).Record = true
	for i := 0; ; i++ {
		step := record.Next(start, i)
		if step.After(end) {
			break
		}
		landing := record.PeriodEnd(step)
		if landing.After(end) {
			break
		}
		s.event(landing).Record = true
	}

	for _, t := range transfers {
		from, to := t.Parties()
		p := Pending{Transfer: t.TransferID(), From: from, To: to, Amount: t.Producer()}
		for _, on := range t.Occurrences(r) {
			e := s.event(on)
			e.Pending = append(e.Pending, p)
		}
	}
	return s, nil
}

// event returns the event on 'on', creating it if needed.
func (s *Schedule) event(on date.Date) *Event {
	e, ok := s.events[on]
	if !ok {
		e = new(Event)
		s.events[on] = e
	}
	return e
}

// At returns the event on a date.
func (s *Schedule) At(on date.Date) (*Event, bool) {
	e, ok := s.events[on]
	return e, ok
}

// Len returns the number of dates in the schedule.
func (s *Schedule) Len() int { return len(s.events) }

// Dates returns the schedule dates in chronological order.
func (s *Schedule) Dates() []date.Date {
	return slices.SortedFunc(maps.Keys(s.events), date.Date.Compare)
}

// RecordDates returns the record dates in chronological order.
func (s *Schedule) RecordDates() []date.Date {
	var dates []date.Date
	for _, on := range s.Dates() {
		if s.events[on].Record {
			dates = append(dates, on)
		}
	}
	return dates
}

// Occurrences returns the number of pending transfers of a given transfer id.
func (s *Schedule) Occurrences(id string) int {
	n := 0
	for _, e := range s.events {
		for _, p := range e.Pending {
			if p.Transfer == id {
				n++
			}
		}
	}
	return n
}
