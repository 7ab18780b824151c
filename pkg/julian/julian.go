// Package julian implements the Julian calendar. There is no year 0: year
// -1 is 1 B.C.E. and is followed directly by year 1 C.E.
package julian

import (
	"fmt"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

// Supported year range. Year 0 does not exist.
const (
	MinYear = -9999
	MaxYear = 9999
)

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a Julian calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// BCE returns the year number used for n B.C.E.
func BCE(n int) int { return -n }

// CE returns the year number used for n C.E.
func CE(n int) int { return n }

// New validates the fields and returns the date.
func New(year, month, day int) (Date, error) {
	if year == 0 {
		return Date{}, calerr.InvalidDate("julian calendar has no year 0")
	}
	if year < MinYear || year > MaxYear {
		return Date{}, calerr.InvalidDate("julian year %d outside %d..%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, calerr.InvalidDate("julian month %d", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, calerr.InvalidDate("julian day %d in %d-%02d", day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsLeapYear reports whether year has 366 days. B.C.E. years are shifted by
// one because there is no year 0, so 1 B.C.E. is a leap year.
func IsLeapYear(year int) bool {
	var r int64
	if year <= 0 {
		r = 3
	}
	return rdmath.Mod(int64(year), 4) == r
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// Fixed returns the fixed day number of the date.
func (d Date) Fixed() int64 {
	return ToFixed(d.Year, d.Month, d.Day)
}

// ToFixed converts a Julian date to a fixed day number without validating it.
func ToFixed(year, month, day int) int64 {
	y := int64(year)
	if y < 0 {
		y++
	}
	var correction int64
	switch {
	case month <= 2:
		correction = 0
	case IsLeapYear(year):
		correction = -1
	default:
		correction = -2
	}
	return epoch.Julian - 1 +
		365*(y-1) +
		rdmath.FloorDiv(y-1, 4) +
		rdmath.FloorDiv(367*int64(month)-362, 12) +
		correction +
		int64(day)
}

// FromFixed converts a fixed day number to a Julian date.
func FromFixed(rd int64) Date {
	approx := rdmath.FloorDiv(4*(rd-epoch.Julian)+1464, 1461)
	year := int(approx)
	if approx <= 0 {
		year--
	}
	prior := rd - ToFixed(year, 1, 1)
	var correction int64
	switch {
	case rd < ToFixed(year, 3, 1):
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

func (d Date) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("%d-%02d-%02d B.C.E.", -d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}
