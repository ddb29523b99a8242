package api

import (
	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/holiday"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

// LunarView is the JSON form of a lunisolar date.
type LunarView struct {
	Gregorian   string `json:"gregorian"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	IsLeapMonth bool   `json:"is_leap_month"`
	YearName    string `json:"year_name"`
	YearHan     string `json:"year_han"`
	MonthName   string `json:"month_name"`
	DayName     string `json:"day_name"`
}

func lunarView(d calendar.LunisolarDate) LunarView {
	return LunarView{
		Gregorian:   calendar.FormatDate(d.Gregorian),
		Year:        d.Year,
		Month:       d.Month,
		Day:         d.Day,
		IsLeapMonth: d.IsLeapMonth,
		YearName:    d.YearName,
		YearHan:     d.YearHan,
		MonthName:   d.MonthName,
		DayName:     d.DayName,
	}
}

// PairView is the JSON form of a stem/branch pair.
type PairView struct {
	Name          string `json:"name"`
	Han           string `json:"han"`
	Stem          string `json:"stem"`
	Branch        string `json:"branch"`
	StemElement   string `json:"stem_element"`
	BranchElement string `json:"branch_element"`
	CycleIndex    *int   `json:"cycle_index,omitempty"`
}

func pairView(p sexagenary.Pair) PairView {
	v := PairView{
		Name:          p.Name(),
		Han:           p.Han(),
		Stem:          p.Stem.String(),
		Branch:        p.Branch.String(),
		StemElement:   p.Stem.Element().VietnameseName(),
		BranchElement: p.Branch.Element().VietnameseName(),
	}
	if idx, ok := p.CycleIndex(); ok {
		v.CycleIndex = &idx
	}
	return v
}

// ZodiacView names a zodiac animal in both languages.
type ZodiacView struct {
	English    string `json:"english"`
	Vietnamese string `json:"vietnamese"`
}

func zodiacView(z sexagenary.Zodiac) ZodiacView {
	return ZodiacView{English: z.String(), Vietnamese: z.VietnameseName()}
}

// InfoView is the JSON form of sexagenary.Info.
type InfoView struct {
	Date        string     `json:"date"`
	LunarYear   int        `json:"lunar_year"`
	LunarMonth  int        `json:"lunar_month"`
	IsLeapMonth bool       `json:"is_leap_month"`
	Year        PairView   `json:"year"`
	Month       PairView   `json:"month"`
	Day         PairView   `json:"day"`
	Hour        *PairView  `json:"hour,omitempty"`
	Zodiac      ZodiacView `json:"zodiac"`
}

func infoView(info *sexagenary.Info) InfoView {
	v := InfoView{
		Date:        calendar.FormatDate(info.Date),
		LunarYear:   info.LunarYear,
		LunarMonth:  info.LunarMonth,
		IsLeapMonth: info.IsLeapMonth,
		Year:        pairView(info.Year),
		Month:       pairView(info.Month),
		Day:         pairView(info.Day),
		Zodiac:      zodiacView(info.Year.Branch.Zodiac()),
	}
	if info.Hour != nil {
		hv := pairView(*info.Hour)
		v.Hour = &hv
	}
	return v
}

// HourView is one two-hour period of a day.
type HourView struct {
	PairView
	Window  string `json:"window"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Current bool   `json:"current"`
}

// OccurrenceView is the JSON form of a dated holiday.
type OccurrenceView struct {
	Date        string              `json:"date"`
	Weekday     string              `json:"weekday"`
	Holiday     *holiday.Definition `json:"holiday"`
	LunarYear   int                 `json:"lunar_year"`
	LunarMonth  int                 `json:"lunar_month"`
	LunarDay    int                 `json:"lunar_day"`
	IsLeapMonth bool                `json:"is_leap_month"`
	YearName    string              `json:"year_name"`
	Zodiac      string              `json:"zodiac"`
}

func occurrenceViews(occ []holiday.Occurrence) []OccurrenceView {
	out := make([]OccurrenceView, 0, len(occ))
	for _, o := range occ {
		out = append(out, OccurrenceView{
			Date:        calendar.FormatDate(o.Date),
			Weekday:     o.Date.Weekday().String(),
			Holiday:     o.Definition,
			LunarYear:   o.LunarYear,
			LunarMonth:  o.LunarMonth,
			LunarDay:    o.LunarDay,
			IsLeapMonth: o.IsLeapMonth,
			YearName:    o.YearName,
			Zodiac:      o.Zodiac,
		})
	}
	return out
}
