package forecast

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// Kind discriminates the financial entities.
type Kind int

const (
	Chequing Kind = iota
	Asset
	Investment
	Debt
)

var kindNames = map[Kind]string{
	Chequing:   "Chequing",
	Asset:      "Asset",
	Investment: "Investment",
	Debt:       "Debt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a kind name, case insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return Chequing, fmt.Errorf("unknown entity kind %q", s)
}

// Buffered reports whether accruals of that kind are held in the accrual
// buffer until a deposit transfer drains it, rather than posted to the value.
func (k Kind) Buffered() bool { return k == Investment || k == Debt }

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Balance is the state of an entity recorded at a record date.
type Balance struct {
	Value          decimal.Decimal
	PeriodAccruals decimal.Decimal // accruals since the previous record date.
	YearAccruals   decimal.Decimal // accruals since the beginning of the calendar year.
}

// Snapshot is a Balance at a given date.
type Snapshot struct {
	Date date.Date
	Balance
}

// Entity is an account, an asset, an investment or a debt.
//
// The first group of fields defines the entity, the second one is the
// simulation state, rewritten by every run.
type Entity struct {
	ID           string
	Name         string
	Kind         Kind
	Rate         decimal.Decimal // annual nominal accrual rate, negative for depreciation.
	Start        date.Date       // date the initial value settles. Ignored for Chequing.
	InitialValue decimal.Decimal
	Source       Ref       // funds the initial value, External by default.
	Deposit      Frequency // Investment and Debt only: how often the accrual buffer is deposited.

	Value          decimal.Decimal
	AccrualBuffer  decimal.Decimal
	PeriodAccruals decimal.Decimal
	YearAccruals   decimal.Decimal
	history        date.History[Balance]
}

// NewChequing returns a chequing account opened at the timeline start.
func NewChequing(id, name string, initial decimal.Decimal) *Entity {
	return &Entity{ID: id, Name: name, Kind: Chequing, InitialValue: initial}
}

// NewAsset returns an asset that appreciates (or depreciates) at rate.
func NewAsset(id, name string, start date.Date, initial, rate decimal.Decimal) *Entity {
	return &Entity{ID: id, Name: name, Kind: Asset, Start: start, InitialValue: initial, Rate: rate}
}

// NewInvestment returns an investment whose interests are deposited at the given frequency.
func NewInvestment(id, name string, start date.Date, initial, rate decimal.Decimal, deposit Frequency) *Entity {
	return &Entity{ID: id, Name: name, Kind: Investment, Start: start, InitialValue: initial, Rate: rate, Deposit: deposit}
}

// NewDebt returns a debt. The initial value of a debt is negative.
func NewDebt(id, name string, start date.Date, initial, rate decimal.Decimal, deposit Frequency) *Entity {
	return &Entity{ID: id, Name: name, Kind: Debt, Start: start, InitialValue: initial, Rate: rate, Deposit: deposit}
}

// Ref returns a reference to this entity.
func (e *Entity) Ref() Ref { return EntityRef(e.ID) }

// Outstanding returns the value including accruals not yet deposited.
func (e *Entity) Outstanding() decimal.Decimal {
	if e.Kind.Buffered() {
		return e.Value.Add(e.AccrualBuffer)
	}
	return e.Value
}

// reset clears the simulation state.
func (e *Entity) reset() {
	e.Value = decimal.Zero
	e.AccrualBuffer = decimal.Zero
	e.PeriodAccruals = decimal.Zero
	e.YearAccruals = decimal.Zero
	e.history.Clear()
}

// accrue compounds the entity over 'days' and returns the accrual.
func (e *Entity) accrue(days int) decimal.Decimal {
	principal := e.Outstanding()
	if principal.IsZero() || days <= 0 {
		return decimal.Zero
	}
	accrual := principal.Mul(compound(e.Rate, days)).Sub(principal).Round(precision)
	if e.Kind.Buffered() {
		e.AccrualBuffer = e.AccrualBuffer.Add(accrual)
	} else {
		e.Value = e.Value.Add(accrual)
	}
	e.PeriodAccruals = e.PeriodAccruals.Add(accrual)
	e.YearAccruals = e.YearAccruals.Add(accrual)
	return accrual
}

// accrueBetween compounds the entity from 'from' to 'to'. The interval is
// split at each December 31st it crosses, where the year accruals restart.
func (e *Entity) accrueBetween(from, to date.Date) {
	for y := from.Year(); y < to.Year(); y++ {
		yearEnd := date.New(y, time.December, 31)
		if yearEnd.After(from) {
			e.accrue(from.DaysUntil(yearEnd))
			from = yearEnd
		}
		e.YearAccruals = decimal.Zero
	}
	e.accrue(from.DaysUntil(to))
}

// record appends the current state to the history and starts a new period.
func (e *Entity) record(on date.Date) {
	e.history.Append(on, Balance{Value: e.Value, PeriodAccruals: e.PeriodAccruals, YearAccruals: e.YearAccruals})
	e.PeriodAccruals = decimal.Zero
}

// History returns the snapshots recorded by the last run, in chronological order.
func (e *Entity) History() []Snapshot {
	snapshots := make([]Snapshot, 0, e.history.Len())
	for on, b := range e.history.Values() {
		snapshots = append(snapshots, Snapshot{Date: on, Balance: b})
	}
	return snapshots
}

// BalanceAsOf returns the last recorded balance on or before day.
func (e *Entity) BalanceAsOf(day date.Date) (Balance, bool) { return e.history.ValueAsOf(day) }
