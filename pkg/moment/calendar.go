package moment

import (
	"fmt"
	"strings"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/chinese"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/geologic"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/hebrew"
	"github.com/chrissnell/univtime/pkg/julian"
	"github.com/shopspring/decimal"
)

// Calendar identifies a calendar a Moment can be projected onto.
type Calendar int

const (
	Gregorian Calendar = iota + 1
	Julian
	Hebrew
	Chinese
	Geological
)

// Calendars lists every supported calendar.
func Calendars() []Calendar {
	return []Calendar{Gregorian, Julian, Hebrew, Chinese, Geological}
}

func (c Calendar) String() string {
	switch c {
	case Gregorian:
		return "gregorian"
	case Julian:
		return "julian"
	case Hebrew:
		return "hebrew"
	case Chinese:
		return "chinese"
	case Geological:
		return "geological"
	}
	return fmt.Sprintf("calendar(%d)", int(c))
}

// ParseCalendar returns the calendar with the given name.
func ParseCalendar(name string) (Calendar, error) {
	for _, c := range Calendars() {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, calerr.UnsupportedConversion("unknown calendar %q", name)
}

// Date is a date in one of the supported calendars. The set of
// implementations is closed.
type Date interface {
	Calendar() Calendar
	String() string
	fixed() (int64, error)
}

// GregorianDate is a Date in the proleptic Gregorian calendar.
type GregorianDate struct{ gregorian.Date }

// JulianDate is a Date in the Julian calendar.
type JulianDate struct{ julian.Date }

// HebrewDate is a Date in the Hebrew calendar.
type HebrewDate struct{ hebrew.Date }

// ChineseDate is a Date in the Chinese calendar.
type ChineseDate struct{ chinese.Date }

// GeologicalDate counts years before the Unix epoch.
type GeologicalDate struct {
	YearsAgo decimal.Decimal
}

func (GregorianDate) Calendar() Calendar  { return Gregorian }
func (JulianDate) Calendar() Calendar     { return Julian }
func (HebrewDate) Calendar() Calendar     { return Hebrew }
func (ChineseDate) Calendar() Calendar    { return Chinese }
func (GeologicalDate) Calendar() Calendar { return Geological }

func (d GregorianDate) fixed() (int64, error) { return d.Fixed(), nil }
func (d JulianDate) fixed() (int64, error)    { return d.Fixed(), nil }
func (d HebrewDate) fixed() (int64, error)    { return d.Fixed(), nil }
func (d ChineseDate) fixed() (int64, error)   { return d.Fixed() }

func (d GeologicalDate) fixed() (int64, error) {
	day := decimal.NewFromInt(epoch.Unix).Sub(d.YearsAgo.Mul(daysPerYear)).Floor()
	if day.Abs().GreaterThanOrEqual(dayLimit) {
		return 0, calerr.InvalidDate("%s years ago is beyond the representable range", d.YearsAgo)
	}
	return day.IntPart(), nil
}

// Placement returns the geologic units the date falls in.
func (d GeologicalDate) Placement() geologic.Placement {
	ma, _ := d.YearsAgo.Shift(-6).Float64()
	return geologic.Lookup(ma)
}

func (d GeologicalDate) String() string {
	return d.YearsAgo.StringFixed(0) + " years ago"
}

// Fixed-day ranges of the calendar projections. Each calendar is bounded
// by its own valid years: Gregorian and Julian -9999..9999, Hebrew
// 1..9999 AM, Chinese from cycle 1 to the end of Gregorian 9999.
var (
	gregorianRange = [2]int64{gregorian.ToFixed(gregorian.MinYear, 1, 1), gregorian.ToFixed(gregorian.MaxYear, 12, 31)}
	julianRange    = [2]int64{julian.ToFixed(julian.MinYear, 1, 1), julian.ToFixed(julian.MaxYear, 12, 31)}
	hebrewRange    = [2]int64{hebrew.FirstFixed, hebrew.LastFixed}
	// The lower Chinese bound is a coarse cut a year before the epoch; the
	// cycle of the computed date is checked as well.
	chineseRange = [2]int64{epoch.Chinese - 366, chinese.LastFixed}
)

func inRange(rd int64, r [2]int64) bool {
	return rd >= r[0] && rd <= r[1]
}

// DateFromFixed projects a fixed day onto cal. A day outside the calendar's
// range is ErrInvalidDate; the geological calendar accepts any day.
func DateFromFixed(rd int64, cal Calendar) (Date, error) {
	outside := func() error {
		return calerr.InvalidDate("day %d outside the %v calendar range", rd, cal)
	}
	switch cal {
	case Gregorian:
		if !inRange(rd, gregorianRange) {
			return nil, outside()
		}
		return GregorianDate{gregorian.FromFixed(rd)}, nil
	case Julian:
		if !inRange(rd, julianRange) {
			return nil, outside()
		}
		return JulianDate{julian.FromFixed(rd)}, nil
	case Hebrew:
		if !inRange(rd, hebrewRange) {
			return nil, outside()
		}
		d, err := hebrew.FromFixed(rd)
		if err != nil {
			return nil, err
		}
		return HebrewDate{d}, nil
	case Chinese:
		if !inRange(rd, chineseRange) {
			return nil, outside()
		}
		d, err := chinese.FromFixed(rd)
		if err != nil {
			return nil, err
		}
		if d.Cycle < 1 || d.Cycle > chinese.MaxCycle {
			return nil, outside()
		}
		return ChineseDate{d}, nil
	case Geological:
		days := decimal.NewFromInt(epoch.Unix - rd)
		return GeologicalDate{YearsAgo: days.Div(daysPerYear).Floor()}, nil
	}
	return nil, calerr.UnsupportedConversion("no conversion to %v", cal)
}

// Convert converts d to the calendar to by way of its fixed day.
func Convert(d Date, to Calendar) (Date, error) {
	if d == nil {
		return nil, calerr.UnsupportedConversion("no source date")
	}
	rd, err := d.fixed()
	if err != nil {
		return nil, err
	}
	return DateFromFixed(rd, to)
}

// Fixed returns the fixed day of any Date.
func Fixed(d Date) (int64, error) {
	if d == nil {
		return 0, calerr.UnsupportedConversion("no source date")
	}
	return d.fixed()
}
