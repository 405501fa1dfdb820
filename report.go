package forecast

import (
	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// Report is the outcome of a run, shaped for presentation.
type Report struct {
	Currency string
	Range    date.Range
	Record   Frequency
	Dates    []date.Date // record dates, chronological.
	Entities []EntityReport
}

// EntityReport is the history of one entity.
type EntityReport struct {
	ID        string
	Name      string
	Kind      Kind
	Snapshots []Snapshot
}

// Label returns the entity name, or its id when it has none.
func (e EntityReport) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Total is the sum over all entities at a record date.
type Total struct {
	Date           date.Date
	NetWorth       decimal.Decimal
	PeriodAccruals decimal.Decimal
	YearAccruals   decimal.Decimal
}

// Report returns the histories recorded by the last successful run.
// It is empty if the model never ran.
func (m *Model) Report() *Report {
	r := &Report{Currency: m.Params.Currency, Range: m.ran, Record: m.Params.Record}
	seen := make(map[date.Date]bool)
	for e := range m.Entities.All() {
		snapshots := e.History()
		r.Entities = append(r.Entities, EntityReport{ID: e.ID, Name: e.Name, Kind: e.Kind, Snapshots: snapshots})
		for _, s := range snapshots {
			if !seen[s.Date] {
				seen[s.Date] = true
				r.Dates = append(r.Dates, s.Date)
			}
		}
	}
	return r
}

// Entity returns the report of entity 'id'.
func (r *Report) Entity(id string) (EntityReport, bool) {
	for _, e := range r.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityReport{}, false
}

// ValueAsOf returns the recorded value of entity 'id' on or before day.
func (r *Report) ValueAsOf(id string, day date.Date) (decimal.Decimal, bool) {
	e, ok := r.Entity(id)
	if !ok {
		return decimal.Zero, false
	}
	value, found := decimal.Zero, false
	for _, s := range e.Snapshots {
		if s.Date.After(day) {
			break
		}
		value, found = s.Value, true
	}
	return value, found
}

// Totals returns the sum of all entities at each record date.
func (r *Report) Totals() []Total {
	totals := make([]Total, len(r.Dates))
	index := make(map[date.Date]int, len(r.Dates))
	for i, on := range r.Dates {
		totals[i] = Total{Date: on}
		index[on] = i
	}
	for _, e := range r.Entities {
		for _, s := range e.Snapshots {
			t := &totals[index[s.Date]]
			t.NetWorth = t.NetWorth.Add(s.Value)
			t.PeriodAccruals = t.PeriodAccruals.Add(s.PeriodAccruals)
			t.YearAccruals = t.YearAccruals.Add(s.YearAccruals)
		}
	}
	return totals
}

// Money returns an amount in the report currency.
func (r *Report) Money(d decimal.Decimal) Money { return M(d, r.Currency) }
