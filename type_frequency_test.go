package forecast

import (
	"encoding/json"
	"testing"

	"github.com/etnz/forecast/date"
)

func TestFrequencyCalendar(t *testing.T) {
	testCases := []struct {
		name       string
		unit       date.Unit
		multiplier int
		recordable bool
	}{
		{"Annually", date.Year, 1, true},
		{"Semiannually", date.Quarter, 2, true},
		{"Quarterly", date.Quarter, 1, true},
		{"Monthly", date.Month, 1, true},
		{"Biweekly", date.Week, 2, false},
		{"Weekly", date.Week, 1, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseFrequency(tc.name)
			if err != nil {
				t.Fatalf("ParseFrequency(%q) error = %v", tc.name, err)
			}
			if f.String() != tc.name {
				t.Errorf("String() = %q want %q", f.String(), tc.name)
			}
			unit, multiplier := f.Step()
			if unit != tc.unit || multiplier != tc.multiplier {
				t.Errorf("Step() = %v, %d want %v, %d", unit, multiplier, tc.unit, tc.multiplier)
			}
			if f.Recordable() != tc.recordable {
				t.Errorf("Recordable() = %v want %v", f.Recordable(), tc.recordable)
			}
		})
	}
	if len(Frequencies()) != len(testCases) {
		t.Errorf("Frequencies() = %v want %d frequencies", Frequencies(), len(testCases))
	}
}

func TestParseFrequencyUnknown(t *testing.T) {
	if _, err := ParseFrequency("Daily"); err == nil {
		t.Errorf("ParseFrequency(Daily) want error")
	}
	if f, err := ParseFrequency("quarterly"); err != nil || f != Quarterly {
		t.Errorf("ParseFrequency(quarterly) = %v, %v want Quarterly", f, err)
	}
}

func TestFrequencyNext(t *testing.T) {
	origin := day("2025-01-31")
	testCases := []struct {
		f    Frequency
		k    int
		want string
	}{
		{Monthly, 0, "2025-01-31"},
		{Monthly, 1, "2025-02-28"},
		{Monthly, 2, "2025-03-31"},
		{Semiannually, 1, "2025-07-31"},
		{Quarterly, 1, "2025-04-30"},
		{Annually, 3, "2028-01-31"},
		{Biweekly, 1, "2025-02-14"},
		{Weekly, 1, "2025-02-07"},
	}
	for _, tc := range testCases {
		if got := tc.f.Next(origin, tc.k); got != day(tc.want) {
			t.Errorf("%v.Next(%v, %d) = %v want %v", tc.f, origin, tc.k, got, tc.want)
		}
	}
}

func TestFrequencyJSON(t *testing.T) {
	var got struct{ F Frequency }
	if err := json.Unmarshal([]byte(`{"F":"Biweekly"}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.F != Biweekly {
		t.Errorf("Unmarshal() = %v want Biweekly", got.F)
	}
	if err := json.Unmarshal([]byte(`{"F":"Hourly"}`), &got); err == nil {
		t.Errorf("Unmarshal(Hourly) want error")
	}
}
