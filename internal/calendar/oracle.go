package calendar

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// VietnamUTCOffset is the offset, in hours, the Vietnamese lunisolar calendar
// is computed at. New moons and solar terms are reckoned in this local time.
const VietnamUTCOffset = 7.0

const (
	synodicMonth = 29.530588853
	// newMoonEpoch is the JDN of the new moon of 1900-01-01 (k = 0).
	newMoonEpoch = 2415021.076998695
)

// RawDate is a lunisolar date as the underlying calendar sees it: Month is
// the ordinal position of the month within its year (1..13) and LeapMonth is
// the ordinal of that year's leap month, or 0 when the year has none.
type RawDate struct {
	Year      int
	Month     int
	Day       int
	LeapMonth int
}

// Oracle is the lunisolar calendar primitive the Converter is built on.
type Oracle interface {
	// FromJDN converts a Julian Day Number to a raw lunisolar date.
	FromJDN(jdn int) (RawDate, error)

	// MonthStart returns the JDN of the first day of the raw month and the
	// number of days in it (29 or 30).
	MonthStart(year, rawMonth int) (start int, length int, err error)

	// LeapMonth returns the raw index of the year's leap month (0 if none).
	LeapMonth(year int) (int, error)
}

// errNoSuchMonth is returned by the oracle for a raw month the year lacks.
var errNoSuchMonth = errors.New("no such lunar month")

// lunation is one lunar month inside an 11th-month-to-11th-month span.
type lunation struct {
	start  int
	number int // display number 1..12
	leap   bool
}

// yearTable holds the months of one lunisolar year in raw order.
type yearTable struct {
	months []lunation
	end    int // JDN of the first day of the following year
	leap   int // raw index of the leap month, 0 if none
}

func (t *yearTable) start() int {
	return t.months[0].start
}

func (t *yearTable) length(i int) int {
	if i+1 < len(t.months) {
		return t.months[i+1].start - t.months[i].start
	}
	return t.end - t.months[i].start
}

// AstronomicalOracle computes the calendar from mean new-moon and apparent
// solar-longitude series. Year tables are memoized; they never change once
// computed, so the oracle is safe for concurrent use.
type AstronomicalOracle struct {
	offset float64
	tables sync.Map // int -> *yearTable
}

// NewAstronomicalOracle returns an oracle computing at the given UTC offset
// in hours. Use VietnamUTCOffset for the Vietnamese calendar.
func NewAstronomicalOracle(utcOffset float64) *AstronomicalOracle {
	return &AstronomicalOracle{offset: utcOffset}
}

// FromJDN implements Oracle.
func (o *AstronomicalOracle) FromJDN(jdn int) (RawDate, error) {
	y, _, _ := FromJulianDayNumber(jdn)

	t := o.table(y)
	if jdn < t.start() {
		y--
		t = o.table(y)
	} else if jdn >= t.end {
		y++
		t = o.table(y)
	}
	if jdn < t.start() || jdn >= t.end {
		return RawDate{}, fmt.Errorf("jdn %d outside lunar year %d", jdn, y)
	}

	for i := len(t.months) - 1; i >= 0; i-- {
		if jdn >= t.months[i].start {
			return RawDate{
				Year:      y,
				Month:     i + 1,
				Day:       jdn - t.months[i].start + 1,
				LeapMonth: t.leap,
			}, nil
		}
	}
	return RawDate{}, fmt.Errorf("jdn %d before lunar year %d", jdn, y)
}

// MonthStart implements Oracle.
func (o *AstronomicalOracle) MonthStart(year, rawMonth int) (int, int, error) {
	t := o.table(year)
	if rawMonth < 1 || rawMonth > len(t.months) {
		return 0, 0, fmt.Errorf("%w: year %d month index %d", errNoSuchMonth, year, rawMonth)
	}
	return t.months[rawMonth-1].start, t.length(rawMonth - 1), nil
}

// LeapMonth implements Oracle.
func (o *AstronomicalOracle) LeapMonth(year int) (int, error) {
	return o.table(year).leap, nil
}

func (o *AstronomicalOracle) table(year int) *yearTable {
	if t, ok := o.tables.Load(year); ok {
		return t.(*yearTable)
	}
	t, _ := o.tables.LoadOrStore(year, o.buildYear(year))
	return t.(*yearTable)
}

// buildYear lays out the lunar months between the 11th month of year-1 and
// the 11th month of year+1, then cuts the year from its first month to the
// first month of the next year.
func (o *AstronomicalOracle) buildYear(year int) *yearTable {
	a := o.month11(year - 1)
	b := o.month11(year)
	c := o.month11(year + 1)

	seq := append(o.span(a, b), o.span(b, c)...)

	first, next := -1, -1
	for i, m := range seq {
		if m.number != 1 || m.leap {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		next = i
		break
	}

	t := &yearTable{
		months: seq[first:next],
		end:    seq[next].start,
	}
	for i, m := range t.months {
		if m.leap {
			t.leap = i + 1
		}
	}
	return t
}

// span lists the months from the 11th month starting at a11 up to (not
// including) the 11th month starting at b11. A span of 13 months carries a
// leap month: the first month without a major solar term.
func (o *AstronomicalOracle) span(a11, b11 int) []lunation {
	k := int(math.Floor(0.5 + (float64(a11)-newMoonEpoch)/synodicMonth))

	count, leapOff := 12, -1
	if b11-a11 > 365 {
		count = 13
		leapOff = o.leapMonthOffset(a11)
	}

	months := make([]lunation, 0, count)
	for off := 0; off < count; off++ {
		n, leap := off, false
		if leapOff >= 0 && off >= leapOff {
			n = off - 1
			leap = off == leapOff
		}
		months = append(months, lunation{
			start:  o.newMoonDay(k + off),
			number: (n+10)%12 + 1,
			leap:   leap,
		})
	}
	return months
}

// month11 returns the JDN of the first day of the month containing the
// winter solstice of the given Gregorian year.
func (o *AstronomicalOracle) month11(year int) int {
	off := JulianDayNumber(year, 12, 31) - 2415021
	k := int(math.Floor(float64(off) / synodicMonth))
	nm := o.newMoonDay(k)
	if o.sunSector(nm) >= 9 {
		nm = o.newMoonDay(k - 1)
	}
	return nm
}

func (o *AstronomicalOracle) leapMonthOffset(a11 int) int {
	k := int(math.Floor((float64(a11)-newMoonEpoch)/synodicMonth + 0.5))
	i := 1
	arc := o.sunSector(o.newMoonDay(k + i))
	for {
		last := arc
		i++
		arc = o.sunSector(o.newMoonDay(k + i))
		if arc == last || i >= 14 {
			break
		}
	}
	return i - 1
}

func (o *AstronomicalOracle) newMoonDay(k int) int {
	return int(math.Floor(newMoon(k) + 0.5 + o.offset/24))
}

// sunSector is the index (0..11) of the 30-degree arc the sun occupies at
// local midnight starting the given day.
func (o *AstronomicalOracle) sunSector(jdn int) int {
	return int(math.Floor(sunLongitude(float64(jdn)-0.5-o.offset/24) / math.Pi * 6))
}

// newMoon returns the Julian date (UTC) of the k-th new moon after 1900-01-01.
func newMoon(k int) float64 {
	const dr = math.Pi / 180
	kf := float64(k)
	t := kf / 1236.85
	t2 := t * t
	t3 := t2 * t

	jd1 := 2415020.75933 + 29.53058868*kf + 0.0001178*t2 - 0.000000155*t3
	jd1 += 0.00033 * math.Sin((166.56+132.87*t-0.009173*t2)*dr)

	m := 359.2242 + 29.10535608*kf - 0.0000333*t2 - 0.00000347*t3
	mpr := 306.0253 + 385.81691806*kf + 0.0107306*t2 + 0.00001236*t3
	f := 21.2964 + 390.67050646*kf - 0.0016528*t2 - 0.00000239*t3

	c1 := (0.1734-0.000393*t)*math.Sin(m*dr) + 0.0021*math.Sin(2*dr*m)
	c1 = c1 - 0.4068*math.Sin(mpr*dr) + 0.0161*math.Sin(dr*2*mpr)
	c1 -= 0.0004 * math.Sin(dr*3*mpr)
	c1 = c1 + 0.0104*math.Sin(dr*2*f) - 0.0051*math.Sin(dr*(m+mpr))
	c1 = c1 - 0.0074*math.Sin(dr*(m-mpr)) + 0.0004*math.Sin(dr*(2*f+m))
	c1 = c1 - 0.0004*math.Sin(dr*(2*f-m)) - 0.0006*math.Sin(dr*(2*f+mpr))
	c1 = c1 + 0.0010*math.Sin(dr*(2*f-mpr)) + 0.0005*math.Sin(dr*(2*mpr+m))

	var deltaT float64
	if t < -11 {
		deltaT = 0.001 + 0.000839*t + 0.0002261*t2 - 0.00000845*t3 - 0.000000081*t*t3
	} else {
		deltaT = -0.000278 + 0.000265*t + 0.000262*t2
	}
	return jd1 + c1 - deltaT
}

// sunLongitude returns the sun's apparent longitude in radians, [0, 2π).
func sunLongitude(jd float64) float64 {
	const dr = math.Pi / 180
	t := (jd - 2451545.0) / 36525
	t2 := t * t

	m := 357.52910 + 35999.05030*t - 0.0001559*t2 - 0.00000048*t*t2
	l0 := 280.46645 + 36000.76983*t + 0.0003032*t2
	dl := (1.914600 - 0.004817*t - 0.000014*t2) * math.Sin(dr*m)
	dl += (0.019993-0.000101*t)*math.Sin(dr*2*m) + 0.000290*math.Sin(dr*3*m)

	l := (l0 + dl) * dr
	return l - 2*math.Pi*math.Floor(l/(2*math.Pi))
}
