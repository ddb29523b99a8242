package holiday

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

// Resolver places catalog definitions on concrete dates. It holds only
// read-only state and is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	conv    *calendar.Converter
	logger  *slog.Logger
}

// NewResolver creates a resolver over a catalog.
func NewResolver(catalog *Catalog, conv *calendar.Converter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{catalog: catalog, conv: conv, logger: logger}
}

// Catalog returns the resolver's catalog.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

type occurrenceKey struct {
	id   int
	date time.Time
}

// ForYear returns every occurrence dated in the Gregorian year, sorted by
// date. Definitions sharing a date keep catalog order.
//
// A lunar definition is looked up in the lunar years year and year-1, since
// the lunar year straddles two Gregorian years; candidates that fail to
// convert are skipped. Annotation failures on a found date are returned.
func (r *Resolver) ForYear(year int) ([]Occurrence, error) {
	if !calendar.InRange(year) {
		return nil, fmt.Errorf("%w: %d", calendar.ErrOutOfRange, year)
	}

	var out []Occurrence
	seen := make(map[occurrenceKey]bool)

	add := func(def *Definition, date time.Time) error {
		key := occurrenceKey{id: def.ID, date: date}
		if seen[key] {
			return nil
		}
		occ, err := r.annotate(def, date)
		if err != nil {
			return fmt.Errorf("annotate %q on %s: %w", def.Name, calendar.FormatDate(date), err)
		}
		seen[key] = true
		out = append(out, occ)
		return nil
	}

	for _, def := range r.catalog.defs {
		switch rule := def.Rule.(type) {
		case GregorianFixed:
			date := calendar.Date(year, rule.Month, rule.Day)
			if date.Month() != rule.Month {
				// 29 February outside leap years.
				continue
			}
			if err := add(def, date); err != nil {
				return nil, err
			}
		case LunisolarRecurring:
			for _, date := range r.searchLunar(def, rule, year) {
				if err := add(def, date); err != nil {
					return nil, err
				}
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

// ForMonth returns the occurrences of ForYear that fall in the month.
func (r *Resolver) ForMonth(year int, month time.Month) ([]Occurrence, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	all, err := r.ForYear(year)
	if err != nil {
		return nil, err
	}

	var out []Occurrence
	for _, o := range all {
		if o.Date.Month() == month {
			out = append(out, o)
		}
	}
	return out, nil
}

// OnDate returns the occurrences falling on the calendar date of t.
func (r *Resolver) OnDate(t time.Time) ([]Occurrence, error) {
	month, err := r.ForMonth(t.Year(), t.Month())
	if err != nil {
		return nil, err
	}

	var out []Occurrence
	for _, o := range month {
		if o.Date.Day() == t.Day() {
			out = append(out, o)
		}
	}
	return out, nil
}

// ForDate returns the first definition falling on the calendar date of t,
// or nil when there is none.
func (r *Resolver) ForDate(t time.Time) (*Definition, error) {
	occ, err := r.OnDate(t)
	if err != nil || len(occ) == 0 {
		return nil, err
	}
	return occ[0].Definition, nil
}

// searchState drives the two-candidate lunar year search.
type searchState int

const (
	tryTargetYear searchState = iota
	tryPreviousYear
	searchDone
)

// searchLunar tries the lunar years year and year-1 in turn and keeps the
// dates that land in the Gregorian year.
func (r *Resolver) searchLunar(def *Definition, rule LunisolarRecurring, year int) []time.Time {
	var found []time.Time

	state := tryTargetYear
	for state != searchDone {
		var lunarYear int
		switch state {
		case tryTargetYear:
			lunarYear, state = year, tryPreviousYear
		case tryPreviousYear:
			lunarYear, state = year-1, searchDone
		}

		date, err := r.lunarToGregorian(lunarYear, rule)
		if err != nil {
			r.logger.Debug("holiday candidate skipped",
				slog.Int("holiday_id", def.ID),
				slog.Int("lunar_year", lunarYear),
				slog.Any("error", err),
			)
			continue
		}
		if date.Year() == year {
			found = append(found, date)
		}
	}
	return found
}

// lunarToGregorian converts the rule's date in one lunar year, retrying day
// 29 when the rule allows it and day 30 does not exist.
func (r *Resolver) lunarToGregorian(lunarYear int, rule LunisolarRecurring) (time.Time, error) {
	date, err := r.conv.ToGregorian(lunarYear, rule.Month, rule.Day, rule.IsLeapMonth)
	if err != nil && rule.ShortMonthFallback && rule.Day == 30 &&
		errors.Is(err, calendar.ErrNonexistentLunarDate) {
		return r.conv.ToGregorian(lunarYear, rule.Month, 29, rule.IsLeapMonth)
	}
	return date, err
}

func (r *Resolver) annotate(def *Definition, date time.Time) (Occurrence, error) {
	lunar := r.conv.ToLunisolar(date)
	if lunar.Degraded {
		return Occurrence{}, fmt.Errorf("%w: no lunar date for %s", calendar.ErrOutOfRange, calendar.FormatDate(date))
	}
	year := sexagenary.YearStemBranch(lunar.Year)

	return Occurrence{
		Definition:  def,
		Date:        date,
		LunarYear:   lunar.Year,
		LunarMonth:  lunar.Month,
		LunarDay:    lunar.Day,
		IsLeapMonth: lunar.IsLeapMonth,
		YearName:    year.Name(),
		Zodiac:      year.Branch.Zodiac().String(),
	}, nil
}
