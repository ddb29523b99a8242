// Package holiday resolves a catalog of Gregorian-fixed and lunar-recurring
// holidays into dated occurrences for a given year.
package holiday

import (
	"fmt"
	"time"
)

// DateRule is either GregorianFixed or LunisolarRecurring.
type DateRule interface {
	isDateRule()
	String() string
}

// GregorianFixed recurs on the same Gregorian month and day every year.
type GregorianFixed struct {
	Month time.Month
	Day   int
}

func (GregorianFixed) isDateRule() {}

func (g GregorianFixed) String() string {
	return fmt.Sprintf("%02d/%02d", g.Day, int(g.Month))
}

// LunisolarRecurring recurs on a lunar month and day.
//
// ShortMonthFallback moves a day-30 holiday to day 29 in years where the
// month is short. Only New Year's Eve carries it.
type LunisolarRecurring struct {
	Month              int
	Day                int
	IsLeapMonth        bool
	ShortMonthFallback bool
}

func (LunisolarRecurring) isDateRule() {}

func (l LunisolarRecurring) String() string {
	if l.IsLeapMonth {
		return fmt.Sprintf("%02d/%02d (leap) lunar", l.Day, l.Month)
	}
	return fmt.Sprintf("%02d/%02d lunar", l.Day, l.Month)
}

// Definition is a catalog entry. Definitions are shared, never mutated.
type Definition struct {
	ID              int
	Name            string
	Description     string
	ColorClass      string
	IsPublicHoliday bool
	Rule            DateRule
}

// IsLunar reports whether the definition recurs on the lunar calendar.
func (d *Definition) IsLunar() bool {
	_, ok := d.Rule.(LunisolarRecurring)
	return ok
}

// Validate checks the rule is set and names a possible date.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("holiday %d: name is required", d.ID)
	}
	switch r := d.Rule.(type) {
	case GregorianFixed:
		if r.Month < time.January || r.Month > time.December {
			return fmt.Errorf("holiday %d: invalid month %d", d.ID, r.Month)
		}
		if r.Day < 1 || r.Day > 31 {
			return fmt.Errorf("holiday %d: invalid day %d", d.ID, r.Day)
		}
	case LunisolarRecurring:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("holiday %d: invalid lunar month %d", d.ID, r.Month)
		}
		if r.Day < 1 || r.Day > 30 {
			return fmt.Errorf("holiday %d: invalid lunar day %d", d.ID, r.Day)
		}
		if r.ShortMonthFallback && r.Day != 30 {
			return fmt.Errorf("holiday %d: short-month fallback needs lunar day 30", d.ID)
		}
	case nil:
		return fmt.Errorf("holiday %d: date rule is required", d.ID)
	default:
		return fmt.Errorf("holiday %d: unknown date rule %T", d.ID, r)
	}
	return nil
}

// Occurrence is a definition placed on a concrete date.
//
// LunarMonth and LunarDay are the actual lunar date, which may differ from
// the definition's nominal day when the short-month fallback applied.
type Occurrence struct {
	Definition  *Definition `json:"definition"`
	Date        time.Time   `json:"date"`
	LunarYear   int         `json:"lunar_year"`
	LunarMonth  int         `json:"lunar_month"`
	LunarDay    int         `json:"lunar_day"`
	IsLeapMonth bool        `json:"is_leap_month"`
	YearName    string      `json:"year_name"`
	Zodiac      string      `json:"zodiac"`
}
