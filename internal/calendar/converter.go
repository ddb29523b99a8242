// Package calendar converts between Gregorian dates and the Vietnamese
// lunisolar calendar.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Supported Gregorian (and lunar) year range.
const (
	MinYear = 1901
	MaxYear = 2100
)

var (
	// ErrOutOfRange is returned when a year falls outside MinYear..MaxYear.
	ErrOutOfRange = errors.New("year out of supported range")

	// ErrNonexistentLunarDate is returned when a lunar month or day does not
	// exist, e.g. day 30 of a 29-day month or a leap month the year lacks.
	ErrNonexistentLunarDate = errors.New("lunar date does not exist")
)

// LunisolarDate is a date in the lunisolar calendar.
//
// Month is always the display month 1..12; leap status is carried in
// IsLeapMonth. A Degraded date could not be converted and simply echoes the
// Gregorian components with empty names.
type LunisolarDate struct {
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Day         int       `json:"day"`
	IsLeapMonth bool      `json:"is_leap_month"`
	Gregorian   time.Time `json:"gregorian"`

	YearName  string `json:"year_name"`
	YearHan   string `json:"year_han"`
	MonthName string `json:"month_name"`
	DayName   string `json:"day_name"`

	Degraded bool `json:"degraded,omitempty"`
}

// Converter converts between Gregorian and lunisolar dates. It holds no
// mutable state of its own and is safe for concurrent use.
type Converter struct {
	oracle Oracle
}

// NewConverter creates a converter over the given oracle.
func NewConverter(oracle Oracle) *Converter {
	return &Converter{oracle: oracle}
}

// NewVietnameseConverter creates a converter computing at UTC+7.
func NewVietnameseConverter() *Converter {
	return NewConverter(NewAstronomicalOracle(VietnamUTCOffset))
}

// InRange reports whether year is within MinYear..MaxYear.
func InRange(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// ToLunisolar converts the calendar date of t (in t's location).
//
// It never fails: outside the supported range, or if the oracle cannot
// convert the date, it returns a Degraded value.
func (c *Converter) ToLunisolar(t time.Time) LunisolarDate {
	y, m, d := t.Date()
	if !InRange(y) {
		return degraded(t)
	}

	raw, err := c.oracle.FromJDN(JulianDayNumber(y, int(m), d))
	if err != nil {
		return degraded(t)
	}

	month, leap := displayMonth(raw.Month, raw.LeapMonth)
	return LunisolarDate{
		Year:        raw.Year,
		Month:       month,
		Day:         raw.Day,
		IsLeapMonth: leap,
		Gregorian:   t,
		YearName:    YearName(raw.Year),
		YearHan:     YearHan(raw.Year),
		MonthName:   MonthName(month, leap),
		DayName:     DayName(raw.Day),
	}
}

// ToGregorian converts a lunisolar date, given by display month, to midnight
// UTC of the matching Gregorian date.
func (c *Converter) ToGregorian(year, month, day int, leap bool) (time.Time, error) {
	start, length, err := c.monthStart(year, month, leap)
	if err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > length {
		return time.Time{}, fmt.Errorf("%w: day %d of %s %d has only %d days",
			ErrNonexistentLunarDate, day, MonthName(month, leap), year, length)
	}
	return DateFromJDN(start + day - 1), nil
}

// LunarMonthLength returns the number of days (29 or 30) in a lunar month.
func (c *Converter) LunarMonthLength(year, month int, leap bool) (int, error) {
	_, length, err := c.monthStart(year, month, leap)
	return length, err
}

// LeapMonth returns the display number of the year's leap month, or 0.
func (c *Converter) LeapMonth(year int) (int, error) {
	if !InRange(year) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, year)
	}
	raw, err := c.oracle.LeapMonth(year)
	if err != nil {
		return 0, err
	}
	if raw == 0 {
		return 0, nil
	}
	return raw - 1, nil
}

// MonthInfo converts every day of a Gregorian month.
func (c *Converter) MonthInfo(year int, month time.Month) ([]LunisolarDate, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	if !InRange(year) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, year)
	}

	days := DaysIn(year, month)
	out := make([]LunisolarDate, 0, days)
	for d := 1; d <= days; d++ {
		out = append(out, c.ToLunisolar(Date(year, month, d)))
	}
	return out, nil
}

// monthStart maps a display month to its raw index and asks the oracle for
// its first day and length.
func (c *Converter) monthStart(year, month int, leap bool) (int, int, error) {
	if !InRange(year) {
		return 0, 0, fmt.Errorf("%w: %d", ErrOutOfRange, year)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month %d", ErrNonexistentLunarDate, month)
	}

	leapIndex, err := c.oracle.LeapMonth(year)
	if err != nil {
		return 0, 0, err
	}
	raw, err := rawMonth(month, leap, leapIndex)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %d", err, year)
	}

	start, length, err := c.oracle.MonthStart(year, raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNonexistentLunarDate, err)
	}
	return start, length, nil
}

// displayMonth renumbers a raw month index: months after the leap month
// shift down by one so that 1..12 always name ordinary months.
func displayMonth(raw, leapIndex int) (month int, leap bool) {
	if leapIndex > 0 && raw >= leapIndex {
		return raw - 1, raw == leapIndex
	}
	return raw, false
}

// rawMonth is the inverse of displayMonth.
func rawMonth(month int, leap bool, leapIndex int) (int, error) {
	if leap {
		if leapIndex == 0 || leapIndex-1 != month {
			return 0, fmt.Errorf("%w: no leap month %d", ErrNonexistentLunarDate, month)
		}
		return leapIndex, nil
	}
	if leapIndex > 0 && leapIndex <= month {
		return month + 1, nil
	}
	return month, nil
}

func degraded(t time.Time) LunisolarDate {
	y, m, d := t.Date()
	return LunisolarDate{
		Year:      y,
		Month:     int(m),
		Day:       d,
		Gregorian: t,
		Degraded:  true,
	}
}
