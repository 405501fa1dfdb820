package forecast

import (
	"context"
	"testing"

	"github.com/etnz/forecast/date"
)

func TestReport(t *testing.T) {
	m := NewModel()
	chq := NewChequing("chq", "Chequing", D(1000))
	loan := NewDebt("loan", "", day("2025-01-01"), D(-400), D(0), Monthly)
	mustAdd(t, m, chq, loan, NewRecurring(chq.Ref(), loan.Ref(), D(100), day("2025-01-10"), date.Date{}, Monthly))
	m.SetEndDate(day("2025-03-31"))

	if r := m.Report(); len(r.Dates) != 0 || !r.Range.From.IsZero() {
		t.Errorf("Report() before any run = %+v want empty", r)
	}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	r := m.Report()
	if r.Currency != DefaultCurrency {
		t.Errorf("Currency = %q want %q", r.Currency, DefaultCurrency)
	}
	if want := (date.Range{From: day("2025-01-01"), To: day("2025-03-31")}); r.Range != want {
		t.Errorf("Range = %v want %v", r.Range, want)
	}
	if len(r.Dates) != 4 {
		t.Errorf("Dates = %v want 4 record dates", r.Dates)
	}

	e, ok := r.Entity("loan")
	if !ok || e.Label() != "loan" || e.Kind != Debt {
		t.Errorf("Entity(loan) = %+v, %v", e, ok)
	}
	if e, _ := r.Entity("chq"); e.Label() != "Chequing" {
		t.Errorf("Label() = %q want Chequing", e.Label())
	}
	if _, ok := r.Entity("nope"); ok {
		t.Errorf("Entity(nope) found")
	}

	if v, ok := r.ValueAsOf("loan", day("2025-02-15")); !ok || !v.Equal(D(-300)) {
		t.Errorf("ValueAsOf(loan, 2025-02-15) = %v, %v want -300", v, ok)
	}
	if _, ok := r.ValueAsOf("loan", day("2024-12-31")); ok {
		t.Errorf("ValueAsOf(loan, 2024-12-31) found a value before the first record")
	}

	// transfers between entities do not change the net worth.
	for _, total := range r.Totals() {
		if !total.NetWorth.Equal(D(600)) {
			t.Errorf("net worth on %v = %v want 600", total.Date, total.NetWorth)
		}
	}
	if got := r.Money(D(1234.5)).String(); got != "$1,234.50" {
		t.Errorf("Money().String() = %q want $1,234.50", got)
	}
}
