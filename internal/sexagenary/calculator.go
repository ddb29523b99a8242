package sexagenary

import (
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

var (
	// ErrInvalidArgument is returned when a formula receives an index or
	// month outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is calendar.ErrOutOfRange, re-exported for callers of
	// FullInfo.
	ErrOutOfRange = calendar.ErrOutOfRange
)

// Pair is a stem/branch combination.
type Pair struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// Name returns e.g. "Giáp Tý".
func (p Pair) Name() string {
	return p.Stem.String() + " " + p.Branch.String()
}

// Han returns e.g. "甲子".
func (p Pair) Han() string {
	return p.Stem.Han() + p.Branch.Han()
}

// CycleIndex returns the pair's position 0..59 in the sexagenary cycle.
// Pairs whose stem and branch differ in parity are not in the cycle.
func (p Pair) CycleIndex() (int, bool) {
	if !p.Stem.Valid() || !p.Branch.Valid() || int(p.Stem)%2 != int(p.Branch)%2 {
		return 0, false
	}
	return mod(6*int(p.Stem)-5*int(p.Branch), 60), true
}

func (p Pair) String() string {
	return p.Name()
}

// Day-cycle calibration. 1949-10-01 (JDN 2433191) and 2000-01-07
// (JDN 2451551) are Giáp Tý days; both are ≡ 11 (mod 60).
const (
	dayStemOffset   = 9
	dayBranchOffset = 1
)

// DayStemBranch returns the pair of the calendar date of t.
func DayStemBranch(t time.Time) Pair {
	jdn := calendar.JDN(t)
	return Pair{
		Stem:   Stem(mod(jdn+dayStemOffset, StemCount)),
		Branch: Branch(mod(jdn+dayBranchOffset, BranchCount)),
	}
}

// YearStemBranch returns the pair of a lunar year.
func YearStemBranch(lunarYear int) Pair {
	return Pair{
		Stem:   Stem(mod(lunarYear+6, StemCount)),
		Branch: Branch(mod(lunarYear+8, BranchCount)),
	}
}

// MonthStemBranch returns the pair of a lunar month (1..13) in a year whose
// stem is yearStem. Month 1 is always a Dần (Tiger) month. The stem is
// (2*yearStem + month) mod 10 and need not share the branch's parity.
func MonthStemBranch(lunarMonth int, yearStem Stem) (Pair, error) {
	if lunarMonth < 1 || lunarMonth > 13 {
		return Pair{}, fmt.Errorf("%w: lunar month %d", ErrInvalidArgument, lunarMonth)
	}
	if !yearStem.Valid() {
		return Pair{}, fmt.Errorf("%w: year stem %d", ErrInvalidArgument, int(yearStem))
	}
	return Pair{
		Stem:   Stem(mod(2*int(yearStem)+lunarMonth, StemCount)),
		Branch: Branch(mod(lunarMonth+1, BranchCount)),
	}, nil
}

// HourStemBranch returns the pair of a clock hour (0..23) on a day whose
// stem is dayStem. The Tý hour runs 23:00-00:59; both halves use the stem of
// the calendar day as given, not the following day.
func HourStemBranch(hour int, dayStem Stem) (Pair, error) {
	if hour < 0 || hour > 23 {
		return Pair{}, fmt.Errorf("%w: hour %d", ErrInvalidArgument, hour)
	}
	if !dayStem.Valid() {
		return Pair{}, fmt.Errorf("%w: day stem %d", ErrInvalidArgument, int(dayStem))
	}
	branch := ((hour + 1) % 24) / 2
	return Pair{
		Stem:   Stem((2*int(dayStem) + branch) % StemCount),
		Branch: Branch(branch),
	}, nil
}

// HourBranch describes one of the twelve two-hour periods of a day.
type HourBranch struct {
	Pair
	Window  HourWindow `json:"window"`
	Current bool       `json:"current"`
}

// AllHourBranches returns the twelve hour periods of t's calendar date in
// Tý..Hợi order. Current marks the period containing t's clock time.
func AllHourBranches(t time.Time) [BranchCount]HourBranch {
	dayStem := DayStemBranch(t).Stem
	hour := t.Hour()

	var out [BranchCount]HourBranch
	for b := BranchZi; b <= BranchHai; b++ {
		w := b.Window()
		out[b] = HourBranch{
			Pair:    Pair{Stem: Stem((2*int(dayStem) + int(b)) % StemCount), Branch: b},
			Window:  w,
			Current: w.Contains(hour),
		}
	}
	return out
}

// Info is the full sexagenary description of a date.
// Hour is set only when the date carried a time other than midnight.
type Info struct {
	Date        time.Time `json:"date"`
	Year        Pair      `json:"year"`
	LunarYear   int       `json:"lunar_year"`
	LunarMonth  int       `json:"lunar_month"`
	IsLeapMonth bool      `json:"is_leap_month"`
	Month       Pair      `json:"month"`
	Day         Pair      `json:"day"`
	Hour        *Pair     `json:"hour,omitempty"`
}

// YearInfo summarizes a lunar year.
type YearInfo struct {
	LunarYear int    `json:"lunar_year"`
	Pair      Pair   `json:"pair"`
	Zodiac    Zodiac `json:"zodiac"`
}

// Calculator composes the formulas with a calendar converter.
type Calculator struct {
	conv *calendar.Converter
}

// NewCalculator creates a calculator over the given converter.
func NewCalculator(conv *calendar.Converter) *Calculator {
	return &Calculator{conv: conv}
}

// YearInfo returns the pair and zodiac animal of a lunar year.
func (c *Calculator) YearInfo(lunarYear int) YearInfo {
	p := YearStemBranch(lunarYear)
	return YearInfo{LunarYear: lunarYear, Pair: p, Zodiac: p.Branch.Zodiac()}
}

// FullInfo computes the sexagenary description of t. Unlike the converter,
// it refuses dates outside the supported range with ErrOutOfRange.
func (c *Calculator) FullInfo(t time.Time) (*Info, error) {
	if !calendar.InRange(t.Year()) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, t.Year())
	}

	lunar := c.conv.ToLunisolar(t)
	if lunar.Degraded {
		return nil, fmt.Errorf("%w: no lunar date for %s", ErrOutOfRange, calendar.FormatDate(t))
	}

	year := YearStemBranch(lunar.Year)
	month, err := MonthStemBranch(lunar.Month, year.Stem)
	if err != nil {
		return nil, err
	}
	day := DayStemBranch(t)

	info := &Info{
		Date:        t,
		Year:        year,
		LunarYear:   lunar.Year,
		LunarMonth:  lunar.Month,
		IsLeapMonth: lunar.IsLeapMonth,
		Month:       month,
		Day:         day,
	}
	if calendar.HasTimeOfDay(t) {
		hour, err := HourStemBranch(t.Hour(), day.Stem)
		if err != nil {
			return nil, err
		}
		info.Hour = &hour
	}
	return info, nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
