package calendar

import (
	"fmt"
	"time"
)

// Location is the zone "today" is reckoned in for the Vietnamese calendar.
var Location = time.FixedZone("ICT", 7*60*60)

// JulianDayNumber returns the JDN of a proleptic Gregorian date.
func JulianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// JDN returns the Julian Day Number of t's calendar date in t's location.
func JDN(t time.Time) int {
	y, m, d := t.Date()
	return JulianDayNumber(y, int(m), d)
}

// FromJulianDayNumber is the inverse of JulianDayNumber.
func FromJulianDayNumber(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - b*146097/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153

	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = b*100 + d - 4800 + m/10
	return year, month, day
}

// DateFromJDN returns midnight UTC of the given Julian Day Number.
func DateFromJDN(jdn int) time.Time {
	y, m, d := FromJulianDayNumber(jdn)
	return Date(y, time.Month(m), d)
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to midnight of its calendar date, keeping its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// HasTimeOfDay reports whether t carries a time other than midnight.
func HasTimeOfDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h != 0 || m != 0 || s != 0 || t.Nanosecond() != 0
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysIn returns the number of days in the Gregorian month.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// ParseDateString parses a date string in YYYY-MM-DD format
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// ParseDateTime parses a YYYY-MM-DD date and an optional HH:MM time.
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	date, err := ParseDateString(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	if timeStr == "" {
		return date, nil
	}
	clock, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns a mod n in [0, n).
func floorMod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
