package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/etnz/forecast/date"
	"github.com/shopspring/decimal"
)

func TestEntityMarshalJSON(t *testing.T) {
	tfsa := NewInvestment("tfsa", "", day("2025-01-01"), D(10000), D(0.05), Quarterly)
	tfsa.Source = EntityRef("chq")

	tests := []struct {
		name   string
		entity *Entity
		want   string
	}{
		{
			name:   "chequing has no start",
			entity: NewChequing("chq", "", D(2500.5)),
			want:   `{"id":"chq","kind":"Chequing","initialValue":2500.5}`,
		},
		{
			name:   "asset without rate",
			entity: NewAsset("art", "", day("2025-02-15"), D(50), D(0)),
			want:   `{"id":"art","kind":"Asset","start":"2025-02-15","initialValue":50}`,
		},
		{
			name:   "investment funded from chequing",
			entity: tfsa,
			want:   `{"id":"tfsa","kind":"Investment","start":"2025-01-01","initialValue":10000,"rate":0.05,"source":"chq","deposit":"Quarterly"}`,
		},
		{
			name:   "named debt",
			entity: NewDebt("mortgage", "Mortgage", day("2025-01-01"), D(-300000), D(0.045), Monthly),
			want:   `{"id":"mortgage","name":"Mortgage","kind":"Debt","start":"2025-01-01","initialValue":-300000,"rate":0.045,"deposit":"Monthly"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.entity)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTransferMarshalJSON(t *testing.T) {
	rent := NewRecurring(EntityRef("chq"), External, D(1200), day("2025-01-01"), day("2025-12-31"), Monthly)
	rent.ID = "rent"

	tests := []struct {
		name     string
		transfer Transfer
		want     string
	}{
		{
			name:     "one-time without id",
			transfer: NewOneTime(External, EntityRef("tfsa"), D(5000), day("2025-12-15")),
			want:     `{"from":"external","to":"tfsa","amount":5000,"date":"2025-12-15"}`,
		},
		{
			name:     "recurring with an end",
			transfer: rent,
			want:     `{"id":"rent","from":"chq","to":"external","amount":1200,"start":"2025-01-01","end":"2025-12-31","frequency":"Monthly"}`,
		},
		{
			name:     "open ended recurring",
			transfer: NewRecurring(External, EntityRef("chq"), D(3200), day("2025-01-15"), date.Date{}, Biweekly),
			want:     `{"from":"external","to":"chq","amount":3200,"start":"2025-01-15","frequency":"Biweekly"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.transfer)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}

	t.Run("computed amount", func(t *testing.T) {
		computed := NewOneTimeOf(External, EntityRef("chq"), AmountFunc(func(*Model) (decimal.Decimal, error) {
			return D(1), nil
		}), day("2025-01-01"))
		if _, err := computed.MarshalJSON(); !errors.Is(err, errNotFixed) {
			t.Errorf("MarshalJSON() error = %v want errNotFixed", err)
		}
	})
}

func TestSnapshotLine(t *testing.T) {
	m := NewModel()
	mustAdd(t, m, NewChequing("chq", "", D(100)))
	m.SetStartDate(day("2025-01-01"))
	m.SetEndDate(day("2025-01-01"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeHistory(&buf, m.Report()); err != nil {
		t.Fatalf("EncodeHistory() error = %v", err)
	}
	want := `{"date":"2025-01-01","entity":"chq","value":100,"periodAccruals":0,"yearAccruals":0}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJsonObjectWriterSkipsEmptyParts(t *testing.T) {
	var w jsonObjectWriter
	w.Append("entity", "chq")
	w.Embed([]byte(`{}`))
	w.Optional("name", "")
	w.Optional("end", date.Date{})
	w.Optional("rate", decimal.Zero)
	w.Append("value", number(D(0)))
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	// Append keeps zero values, Optional does not.
	if want := `{"entity":"chq","value":0}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
