package date

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar unit used to step through time.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Quarter
	Year
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Year:
		return "year"
	default:
		panic(fmt.Sprintf("unknown unit %d", u))
	}
}

// ParseUnit parses a unit name, singular or plural.
func ParseUnit(u string) (Unit, error) {
	switch strings.TrimSuffix(strings.ToLower(u), "s") {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "quarter":
		return Quarter, nil
	case "year":
		return Year, nil
	default:
		return Day, fmt.Errorf("unknown unit %q", u)
	}
}

// AddUnits returns the date n units after d.
//
// Month based units clamp the day of month (see AddMonths) and are always
// computed from d itself, so that stepping k times from the same origin
// never drifts after a short month.
func (d Date) AddUnits(n int, u Unit) Date {
	switch u {
	case Day:
		return d.Add(n)
	case Week:
		return d.Add(7 * n)
	case Month:
		return d.AddMonths(n)
	case Quarter:
		return d.AddMonths(3 * n)
	case Year:
		return d.AddMonths(12 * n)
	default:
		panic("unknown unit")
	}
}

// StartOf returns the date of begining of a given unit.
func (d Date) StartOf(u Unit) Date {
	switch u {
	case Day:
		return d
	case Week:
		offset := int(d.Weekday() - time.Monday)
		for offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Month:
		return New(d.y, d.m, 1)
	case Quarter:
		quarter := (d.m - 1) / 3
		return New(d.y, quarter*3+1, 1)
	case Year:
		return New(d.y, time.January, 1)
	default:
		panic("unknown unit")
	}
}

// EndOf returns the date of end of a given unit.
func (d Date) EndOf(u Unit) Date {
	switch u {
	case Day:
		return d
	case Week:
		// weeks end on Sunday
		offset := int(7 - d.Weekday())
		for offset >= 7 {
			offset -= 7
		}
		return d.Add(offset)
	case Month:
		return New(d.y, d.m+1, 0)
	case Quarter:
		quarter := (d.m - 1) / 3       // in [0..3]
		endMonth := quarter*3 + 3      // in [1..12] hence the +3
		return New(d.y, endMonth+1, 0) // last is next month on the day 0
	case Year:
		return New(d.y+1, time.January, 0)
	default:
		panic("unknown unit")
	}
}
