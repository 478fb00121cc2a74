package model

import (
	"fmt"
	"time"
)

// DayKey identifies one weekday of the cafeteria menu.
type DayKey string

const (
	Mon DayKey = "Mon"
	Tue DayKey = "Tue"
	Wed DayKey = "Wed"
	Thu DayKey = "Thu"
	Fri DayKey = "Fri"
)

var dayKeys = []DayKey{Mon, Tue, Wed, Thu, Fri}

// DayKeys returns every day key in weekday order.
func DayKeys() []DayKey {
	out := make([]DayKey, len(dayKeys))
	copy(out, dayKeys)
	return out
}

// Valid reports whether d is one of the five menu days.
func (d DayKey) Valid() bool {
	for _, k := range dayKeys {
		if k == d {
			return true
		}
	}
	return false
}

// ParseDayKey parses s into a DayKey.
func ParseDayKey(s string) (DayKey, error) {
	d := DayKey(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown day key %q", s)
	}
	return d, nil
}

// ResolveDayKey maps a point in time to its menu day.
// Saturday and Sunday resolve to Monday so the dashboard is never empty.
func ResolveDayKey(t time.Time) DayKey {
	switch t.Weekday() {
	case time.Tuesday:
		return Tue
	case time.Wednesday:
		return Wed
	case time.Thursday:
		return Thu
	case time.Friday:
		return Fri
	default:
		return Mon
	}
}

// Clock is the only time source of the dashboard.
type Clock func() time.Time
