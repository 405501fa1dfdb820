package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount produces the amount of a transfer occurrence.
//
// It is evaluated exactly once per occurrence, at the time the occurrence
// is settled, in schedule order.
type Amount interface {
	Amount(m *Model) (decimal.Decimal, error)
}

// Fixed is a constant amount.
type Fixed decimal.Decimal

// Amount returns the fixed value.
func (f Fixed) Amount(*Model) (decimal.Decimal, error) { return decimal.Decimal(f), nil }

func (f Fixed) String() string { return decimal.Decimal(f).String() }

// DrainAccrualBuffer deposits the accruals buffered by an Investment or a
// Debt: its amount is the entity accrual buffer, which is zeroed when read.
type DrainAccrualBuffer struct {
	Entity string
}

// Amount reads and zeroes the entity accrual buffer.
func (d DrainAccrualBuffer) Amount(m *Model) (decimal.Decimal, error) {
	e := m.Entities.Get(d.Entity)
	if e == nil {
		return decimal.Zero, fmt.Errorf("drain accrual buffer: %w: %q", ErrUnknownEntity, d.Entity)
	}
	amount := e.AccrualBuffer
	e.AccrualBuffer = decimal.Zero
	return amount, nil
}

func (d DrainAccrualBuffer) String() string { return "accruals of " + d.Entity }

// AmountFunc adapts a function to the Amount interface.
//
// An error returned by the function aborts the run.
type AmountFunc func(m *Model) (decimal.Decimal, error)

// Amount calls f(m).
func (f AmountFunc) Amount(m *Model) (decimal.Decimal, error) { return f(m) }

func (f AmountFunc) String() string { return "computed" }
