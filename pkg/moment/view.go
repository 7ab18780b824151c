package moment

import (
	"fmt"
	"strings"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/shopspring/decimal"
)

// View is a Moment projected onto a calendar. Fields coarser than the
// Moment's precision are absent and their accessors report false.
type View struct {
	Calendar  Calendar
	Precision Precision

	// Zone and offset of a local view; empty and zero for UTC.
	Zone          string
	OffsetHours   int
	OffsetMinutes int

	date   Date
	hour   int
	minute int
	second decimal.Decimal
}

// In projects m onto cal.
func (m Moment) In(cal Calendar) (View, error) {
	if m.origin {
		return View{}, calerr.UnsupportedConversion("the beginning of time has no %v date", cal)
	}
	var (
		d   Date
		err error
	)
	if cal == Geological {
		days := decimal.NewFromInt(epoch.Unix).Sub(m.day)
		d = GeologicalDate{YearsAgo: days.Div(daysPerYear).Floor()}
	} else if d, err = DateFromFixed(m.day.IntPart(), cal); err != nil {
		return View{}, err
	}
	return View{
		Calendar:  cal,
		Precision: m.precision,
		date:      d,
		hour:      m.hour,
		minute:    m.minute,
		second:    m.second,
	}, nil
}

// Date returns the full calendar date regardless of precision.
func (v View) Date() Date { return v.date }

func (v View) has(p Precision) bool {
	return v.date != nil && v.Precision >= p
}

func (v View) parts() (cycle, year, month, day int) {
	switch d := v.date.(type) {
	case GregorianDate:
		return 0, d.Year, d.Month, d.Day
	case JulianDate:
		return 0, d.Year, d.Month, d.Day
	case HebrewDate:
		return 0, d.Year, d.Month, d.Day
	case ChineseDate:
		return d.Cycle, d.Year, d.Month, d.Day
	}
	return 0, 0, 0, 0
}

// Cycle returns the sexagesimal cycle of a Chinese view.
func (v View) Cycle() (int, bool) {
	cycle, _, _, _ := v.parts()
	return cycle, v.Calendar == Chinese && v.has(Year)
}

// Year returns the calendar year. Geological views have none.
func (v View) Year() (int, bool) {
	_, year, _, _ := v.parts()
	return year, v.Calendar != Geological && v.has(Year)
}

// Month returns the month of the year.
func (v View) Month() (int, bool) {
	_, _, month, _ := v.parts()
	return month, v.Calendar != Geological && v.has(Month)
}

// Leap reports whether a Chinese view falls in a leap month.
func (v View) Leap() (bool, bool) {
	d, ok := v.date.(ChineseDate)
	return ok && d.Leap, ok && v.has(Month)
}

// DayOfMonth returns the day of the month.
func (v View) DayOfMonth() (int, bool) {
	_, _, _, day := v.parts()
	return day, v.Calendar != Geological && v.has(Day)
}

// Hour returns the hour of the day.
func (v View) Hour() (int, bool) { return v.hour, v.has(Hour) }

// Minute returns the minute of the hour.
func (v View) Minute() (int, bool) { return v.minute, v.has(Minute) }

// Second returns the second of the minute.
func (v View) Second() (decimal.Decimal, bool) { return v.second, v.has(Second) }

// String renders the fields present in the view.
func (v View) String() string {
	if v.date == nil {
		return ""
	}
	if g, ok := v.date.(GeologicalDate); ok {
		return g.String()
	}

	var b strings.Builder
	if _, ok := v.DayOfMonth(); ok {
		b.WriteString(v.date.String())
	} else {
		cycle, year, month, _ := v.parts()
		if v.Calendar == Chinese {
			fmt.Fprintf(&b, "%d-", cycle)
		}
		fmt.Fprintf(&b, "%d", year)
		if _, ok := v.Month(); ok {
			fmt.Fprintf(&b, "-%02d", month)
		}
	}
	if v.has(Hour) {
		fmt.Fprintf(&b, " %02d", v.hour)
		if v.has(Minute) {
			fmt.Fprintf(&b, ":%02d", v.minute)
		}
		if v.has(Second) {
			fmt.Fprintf(&b, ":%s", formatSecond(v.second, v.Precision))
		}
	}
	if v.Zone != "" {
		fmt.Fprintf(&b, " %s", v.Zone)
	}
	return b.String()
}
