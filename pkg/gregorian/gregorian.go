// Package gregorian implements the proleptic Gregorian calendar on top of
// fixed day numbers. Years are astronomical: year 0 precedes year 1.
package gregorian

import (
	"fmt"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

// Supported year range.
const (
	MinYear = -9999
	MaxYear = 9999
)

const (
	January  = 1
	February = 2
	March    = 3
	December = 12
)

var monthNames = [13]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a Gregorian calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// New validates the fields and returns the date.
func New(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, calerr.InvalidDate("gregorian year %d outside %d..%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, calerr.InvalidDate("gregorian month %d", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, calerr.InvalidDate("gregorian day %d in %d-%02d", day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	y := int64(year)
	return rdmath.Mod(y, 4) == 0 && (rdmath.Mod(y, 100) != 0 || rdmath.Mod(y, 400) == 0)
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year, month int) int {
	if month == February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// MonthName returns the English name of month.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// Fixed returns the fixed day number of the date.
func (d Date) Fixed() int64 {
	return ToFixed(d.Year, d.Month, d.Day)
}

// ToFixed is the closed-form day count of a Gregorian date. It does not
// validate its arguments.
func ToFixed(year, month, day int) int64 {
	y := int64(year) - 1
	var correction int64
	switch {
	case month <= 2:
		correction = 0
	case IsLeapYear(year):
		correction = -1
	default:
		correction = -2
	}
	return epoch.Gregorian - 1 +
		365*y +
		rdmath.FloorDiv(y, 4) -
		rdmath.FloorDiv(y, 100) +
		rdmath.FloorDiv(y, 400) +
		rdmath.FloorDiv(367*int64(month)-362, 12) +
		correction +
		int64(day)
}

// YearFromFixed returns the Gregorian year containing rd.
func YearFromFixed(rd int64) int {
	d0 := rd - epoch.Gregorian
	n400 := rdmath.FloorDiv(d0, 146097)
	d1 := rdmath.Mod(d0, 146097)
	n100 := rdmath.FloorDiv(d1, 36524)
	d2 := rdmath.Mod(d1, 36524)
	n4 := rdmath.FloorDiv(d2, 1461)
	d3 := rdmath.Mod(d2, 1461)
	n1 := rdmath.FloorDiv(d3, 365)
	year := 400*n400 + 100*n100 + 4*n4 + n1
	// The last day of a 400- or 4-year cycle belongs to the year just counted.
	if n100 == 4 || n1 == 4 {
		return int(year)
	}
	return int(year + 1)
}

// FromFixed converts a fixed day number to a Gregorian date.
func FromFixed(rd int64) Date {
	year := YearFromFixed(rd)
	prior := rd - NewYear(year)
	var correction int64
	switch {
	case rd < ToFixed(year, March, 1):
		correction = 0
	case IsLeapYear(year):
		correction = 1
	default:
		correction = 2
	}
	month := int(rdmath.FloorDiv(12*(prior+correction)+373, 367))
	day := int(rd-ToFixed(year, month, 1)) + 1
	return Date{Year: year, Month: month, Day: day}
}

// NewYear returns the fixed date of January 1 of year.
func NewYear(year int) int64 {
	return ToFixed(year, January, 1)
}

// YearEnd returns the fixed date of December 31 of year.
func YearEnd(year int) int64 {
	return ToFixed(year, December, 31)
}

// DayNumber returns the ordinal day of the year, starting at 1.
func (d Date) DayNumber() int {
	return int(d.Fixed() - YearEnd(d.Year-1))
}

// DaysRemaining returns the days left in the year after d.
func (d Date) DaysRemaining() int {
	return int(YearEnd(d.Year) - d.Fixed())
}

// DateDifference returns the number of days from d1 to d2.
func DateDifference(d1, d2 Date) int64 {
	return d2.Fixed() - d1.Fixed()
}

func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}
