package forecast

import (
	"math"
	"testing"

	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

// day is a helper for test to create dates from const
func day(s string) date.Date { return date.MustParse(s) }

// assertClose fails if got is further than tol from want.
func assertClose(t *testing.T, name string, got decimal.Decimal, want, tol float64) {
	t.Helper()
	if f := got.InexactFloat64(); math.Abs(f-want) > tol {
		t.Errorf("%s = %v want %v (±%v)", name, f, want, tol)
	}
}

// mustAdd adds entities and transfers to m, failing the test on error.
func mustAdd(t *testing.T, m *Model, items ...any) {
	t.Helper()
	for _, item := range items {
		var err error
		switch v := item.(type) {
		case *Entity:
			_, err = m.AddEntity(v)
		case Transfer:
			_, err = m.AddTransfer(v)
		default:
			t.Fatalf("cannot add %T to a model", item)
		}
		if err != nil {
			t.Fatalf("cannot add %v: %v", item, err)
		}
	}
}

// growth is the reference daily compounding factor.
func growth(rate float64, days int) float64 { return math.Pow(1+rate/365, float64(days)) }
