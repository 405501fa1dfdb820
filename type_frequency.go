package forecast

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/forecast/date"
)

// Frequency is the cadence of a recurring transfer or of the history recording.
type Frequency int

const (
	Monthly Frequency = iota // the zero value is the default record frequency.
	Annually
	Semiannually
	Quarterly
	Biweekly
	Weekly
)

// calendarStep is a calendar unit and the number of them in one step.
type calendarStep struct {
	unit       date.Unit
	multiplier int
}

// calendar maps each frequency to its calendar step.
var calendar = map[Frequency]calendarStep{
	Annually:     {date.Year, 1},
	Semiannually: {date.Quarter, 2},
	Quarterly:    {date.Quarter, 1},
	Monthly:      {date.Month, 1},
	Biweekly:     {date.Week, 2},
	Weekly:       {date.Week, 1},
}

var frequencyNames = map[Frequency]string{
	Annually:     "Annually",
	Semiannually: "Semiannually",
	Quarterly:    "Quarterly",
	Monthly:      "Monthly",
	Biweekly:     "Biweekly",
	Weekly:       "Weekly",
}

// Frequencies returns all valid frequencies, longest first.
func Frequencies() []Frequency {
	return []Frequency{Annually, Semiannually, Quarterly, Monthly, Biweekly, Weekly}
}

// RecordFrequencies returns the frequencies that can be used to record history.
func RecordFrequencies() []Frequency {
	return []Frequency{Annually, Semiannually, Quarterly, Monthly}
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// ParseFrequency parses a frequency name, case insensitive.
func ParseFrequency(s string) (Frequency, error) {
	for f, name := range frequencyNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return Monthly, fmt.Errorf("unknown frequency %q", s)
}

// Step returns the calendar unit and multiplier of one period of f.
func (f Frequency) Step() (date.Unit, int) {
	s, ok := calendar[f]
	if !ok {
		panic(fmt.Sprintf("unknown frequency %d", f))
	}
	return s.unit, s.multiplier
}

// Next returns the k-th occurrence after origin, k=0 being origin itself.
func (f Frequency) Next(origin date.Date, k int) date.Date {
	unit, multiplier := f.Step()
	return origin.AddUnits(k*multiplier, unit)
}

// PeriodEnd returns the last day of the calendar unit containing d.
func (f Frequency) PeriodEnd(d date.Date) date.Date {
	unit, _ := f.Step()
	return d.EndOf(unit)
}

// Recordable reports whether f can be used as a record frequency.
//
// Record dates are the ends of calendar units, which weekly steps do not have.
func (f Frequency) Recordable() bool {
	switch f {
	case Annually, Semiannually, Quarterly, Monthly:
		return true
	default:
		return false
	}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	_, ok := calendar[f]
	return ok
}

// MarshalJSON writes the frequency name.
func (f Frequency) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

// UnmarshalJSON reads a frequency name.
func (f *Frequency) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
