package forecast

import (
	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// Transfer defines a one-time or recurring movement of funds between two
// counterparties.
//
// The only implementations are OneTime and Recurring.
type Transfer interface {
	TransferID() string
	Parties() (from, to Ref)
	Producer() Amount // Producer returns what computes the amount of each occurrence.
	// Occurrences returns the dates, within r, at which the transfer settles.
	Occurrences(r date.Range) []date.Date
	// Bounds returns the first date and, when known, the last date of the transfer.
	Bounds() (first, last date.Date)

	withID(id string) Transfer
}

// base holds the fields common to all transfers.
type base struct {
	ID     string
	From   Ref
	To     Ref
	Amount Amount
}

// TransferID returns the transfer identifier, assigned when added to a store.
func (t base) TransferID() string { return t.ID }

// Parties returns the source and destination of the transfer.
func (t base) Parties() (from, to Ref) { return t.From, t.To }

// Producer returns the amount producer.
func (t base) Producer() Amount { return t.Amount }

// OneTime is a transfer that settles once.
type OneTime struct {
	base
	Date date.Date
}

// NewOneTime returns a one-time transfer of a fixed amount.
func NewOneTime(from, to Ref, amount decimal.Decimal, on date.Date) OneTime {
	return NewOneTimeOf(from, to, Fixed(amount), on)
}

// NewOneTimeOf returns a one-time transfer whose amount is computed at settlement.
func NewOneTimeOf(from, to Ref, amount Amount, on date.Date) OneTime {
	return OneTime{base: base{From: from, To: to, Amount: amount}, Date: on}
}

// Occurrences returns the transfer date if it lies within r, boundaries included.
func (t OneTime) Occurrences(r date.Range) []date.Date {
	if !r.Contains(t.Date) {
		return nil
	}
	return []date.Date{t.Date}
}

// Bounds returns the transfer date twice.
func (t OneTime) Bounds() (first, last date.Date) { return t.Date, t.Date }

func (t OneTime) withID(id string) Transfer { t.ID = id; return t }

// Recurring is a transfer that settles at a given frequency, from Start
// until End included. A zero End means until the end of the timeline.
type Recurring struct {
	base
	Start     date.Date
	End       date.Date
	Frequency Frequency
}

// NewRecurring returns a recurring transfer of a fixed amount.
func NewRecurring(from, to Ref, amount decimal.Decimal, start, end date.Date, frequency Frequency) Recurring {
	return NewRecurringOf(from, to, Fixed(amount), start, end, frequency)
}

// NewRecurringOf returns a recurring transfer whose amount is computed at each settlement.
func NewRecurringOf(from, to Ref, amount Amount, start, end date.Date, frequency Frequency) Recurring {
	return Recurring{
		base:      base{From: from, To: to, Amount: amount},
		Start:     start,
		End:       end,
		Frequency: frequency,
	}
}

// Occurrences expands the transfer within r.
//
// A recurring transfer that starts outside r has no occurrences at all,
// and one that ends before it starts has none either. Each occurrence is
// computed from Start, so a monthly transfer on the 31st settles on the
// last day of shorter months and comes back to the 31st afterwards.
func (t Recurring) Occurrences(r date.Range) []date.Date {
	if !r.Contains(t.Start) {
		return nil
	}
	end := r.To
	if !t.End.IsZero() {
		end = date.Min(end, t.End)
	}
	var dates []date.Date
	for k := 0; ; k++ {
		on := t.Frequency.Next(t.Start, k)
		if on.After(end) {
			return dates
		}
		dates = append(dates, on)
	}
}

// Bounds returns Start and End.
func (t Recurring) Bounds() (first, last date.Date) { return t.Start, t.End }

func (t Recurring) withID(id string) Transfer { t.ID = id; return t }
