package holiday

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	icalProdID  = "-//amlich-api//Vietnamese Holidays//VI"
	icalDomain  = "amlich-api"
	icalCalName = "X-WR-CALNAME"
)

// ExportICal renders occurrences as an iCalendar feed of all-day events.
// UIDs depend only on the definition and date, so re-exports are stable.
func ExportICal(name string, occurrences []Occurrence, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProdID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(icalCalName, name)

	for _, o := range occurrences {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%d-%s@%s", o.Definition.ID, o.Date.Format("20060102"), icalDomain))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetText(ical.PropSummary, o.Definition.Name)

		desc := o.Definition.Description
		if o.Definition.IsLunar() {
			desc = fmt.Sprintf("%s (%d/%d %s)", desc, o.LunarDay, o.LunarMonth, o.YearName)
		}
		event.Props.SetText(ical.PropDescription, desc)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(o.Date)
		event.Props.Set(start)

		end := ical.NewProp(ical.PropDateTimeEnd)
		end.SetDate(o.Date.AddDate(0, 0, 1))
		event.Props.Set(end)

		if o.Definition.IsPublicHoliday {
			event.Props.SetText(ical.PropCategories, "PUBLIC HOLIDAY")
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if len(cal.Children) == 0 {
		// The encoder requires at least one component.
		writeEmptyCalendar(&buf, cal)
		return buf.Bytes(), nil
	}
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode icalendar: %w", err)
	}
	return buf.Bytes(), nil
}

// writeEmptyCalendar writes the calendar's own properties. Values come from
// the props, which SetText has already escaped.
func writeEmptyCalendar(buf *bytes.Buffer, cal *ical.Calendar) {
	buf.WriteString("BEGIN:VCALENDAR\r\n")
	for _, name := range []string{ical.PropVersion, ical.PropProductID, ical.PropCalendarScale, icalCalName} {
		if prop := cal.Props.Get(name); prop != nil {
			fmt.Fprintf(buf, "%s:%s\r\n", prop.Name, prop.Value)
		}
	}
	buf.WriteString("END:VCALENDAR\r\n")
}
