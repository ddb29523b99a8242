package database

import (
	"fmt"
	"time"

	"github.com/zapponejosh/amlich-api/internal/holiday"
)

// CalendarKind names the calendar a row's month and day belong to.
type CalendarKind string

const (
	CalendarGregorian CalendarKind = "gregorian"
	CalendarLunar     CalendarKind = "lunar"
)

// HolidayRow is one row of holiday_definitions.
type HolidayRow struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	ColorClass         string       `json:"color_class"`
	IsPublic           bool         `json:"is_public"`
	Calendar           CalendarKind `json:"calendar"`
	Month              int          `json:"month"`
	Day                int          `json:"day"`
	IsLeapMonth        bool         `json:"is_leap_month"`
	ShortMonthFallback bool         `json:"short_month_fallback"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// RowFromRecord flattens a catalog record into a row.
func RowFromRecord(r holiday.Record) (HolidayRow, error) {
	row := HolidayRow{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ColorClass:  r.ColorClass,
		IsPublic:    r.Public,
	}
	switch {
	case r.Gregorian != nil && r.Lunar == nil:
		row.Calendar = CalendarGregorian
		row.Month, row.Day = r.Gregorian.Month, r.Gregorian.Day
	case r.Lunar != nil && r.Gregorian == nil:
		row.Calendar = CalendarLunar
		row.Month, row.Day = r.Lunar.Month, r.Lunar.Day
		row.IsLeapMonth = r.Lunar.Leap
		row.ShortMonthFallback = r.Lunar.ShortMonthFallback
	default:
		return HolidayRow{}, fmt.Errorf("holiday %d: exactly one of gregorian and lunar must be set", r.ID)
	}
	return row, nil
}

// Record converts the row back to a catalog record.
func (h HolidayRow) Record() holiday.Record {
	r := holiday.Record{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		ColorClass:  h.ColorClass,
		Public:      h.IsPublic,
	}
	spec := &holiday.DateSpec{
		Month:              h.Month,
		Day:                h.Day,
		Leap:               h.IsLeapMonth,
		ShortMonthFallback: h.ShortMonthFallback,
	}
	if h.Calendar == CalendarLunar {
		r.Lunar = spec
	} else {
		r.Gregorian = spec
	}
	return r
}

// CatalogStats summarizes the stored catalog.
type CatalogStats struct {
	Total     int `json:"total"`
	Gregorian int `json:"gregorian"`
	Lunar     int `json:"lunar"`
	Public    int `json:"public"`
}
