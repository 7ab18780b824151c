// Package chinese implements the astronomical Chinese lunisolar calendar.
// Months begin on the day of a new moon in Beijing, the winter solstice
// always falls in month 11, and a year of thirteen months repeats the first
// month that contains no major solar term.
package chinese

import (
	"fmt"
	"math"

	"github.com/chrissnell/univtime/pkg/astro"
	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

// maxLeapDepth bounds the backward walk over months in PriorLeapMonth.
// A sui never holds more than thirteen months.
const maxLeapDepth = 16

// MaxCycle is the last sexagenary cycle that starts within the supported
// Gregorian years. Dates are further bounded by LastFixed.
const MaxCycle = 211

// LastFixed is the last fixed day the calendar is computed for, the end of
// Gregorian year 9999.
var LastFixed = gregorian.ToFixed(gregorian.MaxYear, 12, 31)

// Date is a Chinese calendar date. Year counts 1..60 within Cycle, and
// Leap marks the repeated month of a thirteen-month year.
type Date struct {
	Cycle int
	Year  int
	Month int
	Leap  bool
	Day   int
}

// Location returns the place the calendar is computed for at moment t.
// Beijing kept local mean time (UTC+7:45:40) until 1929.
func Location(t float64) astro.Location {
	loc := astro.Location{
		Latitude:  rdmath.Angle(39, 55, 0),
		Longitude: rdmath.Angle(116, 25, 0),
		Elevation: 43.5,
		Zone:      8,
	}
	if gregorian.YearFromFixed(int64(math.Floor(t))) < 1929 {
		loc.Zone = 1397.0 / 180
	}
	return loc
}

// MidnightInChina returns the Universal Time moment that begins date in Beijing.
func MidnightInChina(date int64) float64 {
	d := float64(date)
	return astro.UniversalFromStandard(d, Location(d))
}

// CurrentMajorSolarTerm returns the index (1..12) of the last major solar
// term on or before date.
func CurrentMajorSolarTerm(date int64) int {
	d := float64(date)
	s := astro.SolarLongitude(astro.UniversalFromStandard(d, Location(d)))
	return int(rdmath.AMod(2+int64(math.Floor(s/30)), 12))
}

// CurrentMinorSolarTerm returns the index (1..12) of the last minor solar
// term on or before date.
func CurrentMinorSolarTerm(date int64) int {
	d := float64(date)
	s := astro.SolarLongitude(astro.UniversalFromStandard(d, Location(d)))
	return int(rdmath.AMod(3+int64(math.Floor((s-15)/30)), 12))
}

// SolarLongitudeOnOrAfter returns the Beijing standard time moment at or
// after date when the solar longitude reaches lambda.
func SolarLongitudeOnOrAfter(lambda float64, date int64) (float64, error) {
	d := float64(date)
	sun, err := astro.SolarLongitudeAfter(lambda, astro.UniversalFromStandard(d, Location(d)))
	if err != nil {
		return 0, err
	}
	return astro.StandardFromUniversal(sun, Location(sun)), nil
}

// MajorSolarTermOnOrAfter returns the moment of the first major solar term
// at or after date.
func MajorSolarTermOnOrAfter(date int64) (float64, error) {
	s := astro.SolarLongitude(MidnightInChina(date))
	l := rdmath.ModF(30*math.Ceil(s/30), 360)
	return SolarLongitudeOnOrAfter(l, date)
}

// MinorSolarTermOnOrAfter returns the moment of the first minor solar term
// at or after date.
func MinorSolarTermOnOrAfter(date int64) (float64, error) {
	s := astro.SolarLongitude(MidnightInChina(date))
	l := rdmath.ModF(30*math.Ceil((s-15)/30)+15, 360)
	return SolarLongitudeOnOrAfter(l, date)
}

// WinterSolsticeOnOrBefore returns the fixed date, in Beijing, of the
// winter solstice on or before date.
func WinterSolsticeOnOrBefore(date int64) (int64, error) {
	approx := astro.EstimatePriorSolarLongitude(astro.Winter, MidnightInChina(date+1))
	return rdmath.MinInt(int64(math.Floor(approx))-1, func(day int64) bool {
		return astro.Winter < astro.SolarLongitude(MidnightInChina(day+1))
	})
}

// NewMoonOnOrAfter returns the fixed date, in Beijing, of the first new moon
// on or after date.
func NewMoonOnOrAfter(date int64) (int64, error) {
	t, err := astro.NewMoonAtOrAfter(MidnightInChina(date))
	if err != nil {
		return 0, err
	}
	return int64(math.Floor(astro.StandardFromUniversal(t, Location(t)))), nil
}

// NewMoonBefore returns the fixed date, in Beijing, of the last new moon
// before date.
func NewMoonBefore(date int64) (int64, error) {
	t, err := astro.NewMoonBefore(MidnightInChina(date))
	if err != nil {
		return 0, err
	}
	return int64(math.Floor(astro.StandardFromUniversal(t, Location(t)))), nil
}

// NoMajorSolarTerm reports whether the month beginning on date contains no
// major solar term.
func NoMajorSolarTerm(date int64) (bool, error) {
	next, err := NewMoonOnOrAfter(date + 1)
	if err != nil {
		return false, err
	}
	return CurrentMajorSolarTerm(date) == CurrentMajorSolarTerm(next), nil
}

// PriorLeapMonth reports whether a leap month occurs between the month
// starting on mPrime and the month starting on m, inclusive.
func PriorLeapMonth(mPrime, m int64) (bool, error) {
	for depth := 0; depth < maxLeapDepth; depth++ {
		if m < mPrime {
			return false, nil
		}
		none, err := NoMajorSolarTerm(m)
		if err != nil {
			return false, err
		}
		if none {
			return true, nil
		}
		if m, err = NewMoonBefore(m); err != nil {
			return false, err
		}
	}
	return false, calerr.NotConverged("leap month search from %d back to %d", m, mPrime)
}

// sui holds the winter-solstice bracket of the sui containing a date.
type sui struct {
	m12     int64 // first new moon after the first solstice
	nextM11 int64 // last new moon on or before the second solstice
}

func suiOf(date int64) (sui, error) {
	s1, err := WinterSolsticeOnOrBefore(date)
	if err != nil {
		return sui{}, err
	}
	s2, err := WinterSolsticeOnOrBefore(s1 + 370)
	if err != nil {
		return sui{}, err
	}
	m12, err := NewMoonOnOrAfter(s1 + 1)
	if err != nil {
		return sui{}, err
	}
	nextM11, err := NewMoonBefore(s2 + 1)
	if err != nil {
		return sui{}, err
	}
	return sui{m12: m12, nextM11: nextM11}, nil
}

// hasLeapMonth reports whether the sui spans thirteen new moons.
func (s sui) hasLeapMonth() bool {
	return rdmath.Round(float64(s.nextM11-s.m12)/astro.MeanSynodicMonth) == 12
}

// NewYearInSui returns the fixed date of the Chinese new year within the
// sui containing date.
func NewYearInSui(date int64) (int64, error) {
	s, err := suiOf(date)
	if err != nil {
		return 0, err
	}
	m13, err := NewMoonOnOrAfter(s.m12 + 1)
	if err != nil {
		return 0, err
	}
	if !s.hasLeapMonth() {
		return m13, nil
	}
	// A leap month 11 or 12 pushes the new year one month later.
	none12, err := NoMajorSolarTerm(s.m12)
	if err != nil {
		return 0, err
	}
	none13, err := NoMajorSolarTerm(m13)
	if err != nil {
		return 0, err
	}
	if none12 || none13 {
		return NewMoonOnOrAfter(m13 + 1)
	}
	return m13, nil
}

// NewYearOnOrBefore returns the fixed date of the Chinese new year on or
// before date.
func NewYearOnOrBefore(date int64) (int64, error) {
	newYear, err := NewYearInSui(date)
	if err != nil {
		return 0, err
	}
	if date >= newYear {
		return newYear, nil
	}
	return NewYearInSui(date - 180)
}

// NewYear returns the fixed date of the Chinese new year in Gregorian year.
func NewYear(gYear int) (int64, error) {
	return NewYearOnOrBefore(gregorian.ToFixed(gYear, 7, 1))
}

// FromFixed converts a fixed date to a Chinese date.
func FromFixed(date int64) (Date, error) {
	s, err := suiOf(date)
	if err != nil {
		return Date{}, err
	}
	m, err := NewMoonBefore(date + 1)
	if err != nil {
		return Date{}, err
	}
	leapYear := s.hasLeapMonth()

	var priorLeap bool
	if leapYear {
		if priorLeap, err = PriorLeapMonth(s.m12, m); err != nil {
			return Date{}, err
		}
	}
	months := int64(rdmath.Round(float64(m-s.m12) / astro.MeanSynodicMonth))
	if priorLeap {
		months--
	}
	month := rdmath.AMod(months, 12)

	var leapMonth bool
	if leapYear {
		none, err := NoMajorSolarTerm(m)
		if err != nil {
			return Date{}, err
		}
		if none {
			before, err := NewMoonBefore(m)
			if err != nil {
				return Date{}, err
			}
			earlier, err := PriorLeapMonth(s.m12, before)
			if err != nil {
				return Date{}, err
			}
			leapMonth = !earlier
		}
	}

	elapsedYears := int64(math.Floor(1.5 - float64(month)/12 + float64(date-epoch.Chinese)/astro.MeanTropicalYear))
	return Date{
		Cycle: int(rdmath.FloorDiv(elapsedYears-1, 60) + 1),
		Year:  int(rdmath.AMod(elapsedYears, 60)),
		Month: int(month),
		Leap:  leapMonth,
		Day:   int(date-m) + 1,
	}, nil
}

// Fixed converts the date to a fixed day number without validating it.
func (d Date) Fixed() (int64, error) {
	start, err := monthStart(d.Cycle, d.Year, d.Month, d.Leap)
	if err != nil {
		return 0, err
	}
	return start + int64(d.Day) - 1, nil
}

// monthStart returns the first day of the given month, or of the month
// after it when the requested leap month does not exist.
func monthStart(cycle, year, month int, leap bool) (int64, error) {
	midYear := int64(math.Floor(epoch.Chinese +
		(float64((cycle-1)*60+year-1)+0.5)*astro.MeanTropicalYear))
	newYear, err := NewYearOnOrBefore(midYear)
	if err != nil {
		return 0, err
	}
	p, err := NewMoonOnOrAfter(newYear + int64(month-1)*29)
	if err != nil {
		return 0, err
	}
	d, err := FromFixed(p)
	if err != nil {
		return 0, err
	}
	if month == d.Month && leap == d.Leap {
		return p, nil
	}
	return NewMoonOnOrAfter(p + 1)
}

// MonthLength returns the number of days in the month containing date.
func MonthLength(date int64) (int, error) {
	start, err := NewMoonBefore(date + 1)
	if err != nil {
		return 0, err
	}
	next, err := NewMoonOnOrAfter(start + 1)
	if err != nil {
		return 0, err
	}
	return int(next - start), nil
}

// New validates the fields against the computed calendar and returns the
// date. A leap month is accepted only when that month is actually repeated
// in the year, and the day may not exceed the month's lunation.
func New(cycle, year, month int, leap bool, day int) (Date, error) {
	if cycle < 1 || cycle > MaxCycle {
		return Date{}, calerr.InvalidDate("chinese cycle %d outside 1..%d", cycle, MaxCycle)
	}
	if year < 1 || year > 60 {
		return Date{}, calerr.InvalidDate("chinese year %d outside 1..60", year)
	}
	if month < 1 || month > 12 {
		return Date{}, calerr.InvalidDate("chinese month %d outside 1..12", month)
	}
	if day < 1 || day > 30 {
		return Date{}, calerr.InvalidDate("chinese day %d outside 1..30", day)
	}

	start, err := monthStart(cycle, year, month, leap)
	if err != nil {
		return Date{}, err
	}
	found, err := FromFixed(start)
	if err != nil {
		return Date{}, err
	}
	if found.Cycle != cycle || found.Year != year || found.Month != month || found.Leap != leap {
		if leap {
			return Date{}, calerr.InvalidDate("cycle %d year %d has no leap month %d", cycle, year, month)
		}
		return Date{}, calerr.InvalidDate("chinese month %d-%d-%d does not exist", cycle, year, month)
	}
	length, err := MonthLength(start)
	if err != nil {
		return Date{}, err
	}
	if day > length {
		return Date{}, calerr.InvalidDate("chinese month %d of %d-%d has %d days, not %d", month, cycle, year, length, day)
	}
	if start+int64(day)-1 > LastFixed {
		return Date{}, calerr.InvalidDate("chinese date %d-%d-%d-%d is after the end of Gregorian year %d", cycle, year, month, day, gregorian.MaxYear)
	}
	return Date{Cycle: cycle, Year: year, Month: month, Leap: leap, Day: day}, nil
}

func (d Date) String() string {
	leap := ""
	if d.Leap {
		leap = "L"
	}
	return fmt.Sprintf("%d-%d-%d%s-%d", d.Cycle, d.Year, d.Month, leap, d.Day)
}
