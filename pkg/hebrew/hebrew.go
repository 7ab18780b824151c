// Package hebrew implements the arithmetic Hebrew calendar. Months are
// numbered from Nisan (1) so that Tishri, the month of the new year, is 7
// and the leap month Adar II is 13.
package hebrew

import (
	"fmt"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

// Month numbers.
const (
	Nisan      = 1
	Iyyar      = 2
	Sivan      = 3
	Tammuz     = 4
	Av         = 5
	Elul       = 6
	Tishri     = 7
	Marheshvan = 8
	Kislev     = 9
	Tevet      = 10
	Shevat     = 11
	Adar       = 12
	AdarII     = 13
)

// Supported year range.
const (
	MinYear = 1
	MaxYear = 9999
)

var monthNames = [14]string{"", "Nisan", "Iyyar", "Sivan", "Tammuz", "Av", "Elul",
	"Tishri", "Marheshvan", "Kislev", "Tevet", "Shevat", "Adar", "Adar II"}

// Date is a Hebrew calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// New validates the fields and returns the date. Month 13 exists only in
// leap years and day limits follow the computed length of the year.
func New(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, calerr.InvalidDate("hebrew year %d outside %d..%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > LastMonthOfYear(year) {
		return Date{}, calerr.InvalidDate("hebrew month %d in year %d", month, year)
	}
	if day < 1 || day > LastDayOfMonth(year, month) {
		return Date{}, calerr.InvalidDate("hebrew day %d of %s %d", day, MonthName(year, month), year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsLeapYear reports whether year has thirteen months.
func IsLeapYear(year int) bool {
	return rdmath.Mod(7*int64(year)+1, 19) < 7
}

// LastMonthOfYear is Adar II in leap years and Adar otherwise.
func LastMonthOfYear(year int) int {
	if IsLeapYear(year) {
		return AdarII
	}
	return Adar
}

// SabbaticalYear reports whether year is a shmita year.
func SabbaticalYear(year int) bool {
	return rdmath.Mod(int64(year), 7) == 0
}

// MonthName returns the name of month, which depends on the year for Adar.
func MonthName(year, month int) string {
	if month < 1 || month > 13 {
		return ""
	}
	if month == Adar && IsLeapYear(year) {
		return "Adar I"
	}
	return monthNames[month]
}

// CalendarElapsedDays counts the days from the epoch to the molad of
// Tishri of year, postponed when the molad falls on a forbidden weekday.
func CalendarElapsedDays(year int) int64 {
	monthsElapsed := rdmath.FloorDiv(235*int64(year)-234, 19)
	partsElapsed := 12084 + 13753*monthsElapsed
	days := 29*monthsElapsed + rdmath.FloorDiv(partsElapsed, 25920)
	if rdmath.Mod(3*(days+1), 7) < 3 {
		return days + 1
	}
	return days
}

// YearLengthCorrection returns the extra delay (0, 1 or 2 days) needed to
// keep the lengths of year and its neighbours within the allowed set.
func YearLengthCorrection(year int) int64 {
	ny0 := CalendarElapsedDays(year - 1)
	ny1 := CalendarElapsedDays(year)
	ny2 := CalendarElapsedDays(year + 1)
	switch {
	case ny2-ny1 == 356:
		return 2
	case ny1-ny0 == 382:
		return 1
	}
	return 0
}

// NewYear returns the fixed date of 1 Tishri of year.
func NewYear(year int) int64 {
	return epoch.Hebrew + CalendarElapsedDays(year) + YearLengthCorrection(year)
}

// DaysInYear returns the length of year: one of 353, 354, 355, 383, 384, 385.
func DaysInYear(year int) int64 {
	return NewYear(year+1) - NewYear(year)
}

// LongMarheshvan reports whether Marheshvan has 30 days in year.
func LongMarheshvan(year int) bool {
	n := DaysInYear(year)
	return n == 355 || n == 385
}

// ShortKislev reports whether Kislev has 29 days in year.
func ShortKislev(year int) bool {
	n := DaysInYear(year)
	return n == 353 || n == 383
}

// LastDayOfMonth returns the length of month in year.
func LastDayOfMonth(year, month int) int {
	switch {
	case month == Iyyar, month == Tammuz, month == Elul, month == Tevet, month == AdarII:
		return 29
	case month == Adar && !IsLeapYear(year):
		return 29
	case month == Marheshvan && !LongMarheshvan(year):
		return 29
	case month == Kislev && ShortKislev(year):
		return 29
	}
	return 30
}

// Molad returns the moment of the mean conjunction of month in year.
func Molad(year, month int) float64 {
	y := int64(year)
	if month < Tishri {
		y++
	}
	monthsElapsed := float64(int64(month-Tishri) + rdmath.FloorDiv(235*y-234, 19))
	return epoch.Hebrew - 876.0/25920 + monthsElapsed*(29+12.0/24+793.0/(1080*24))
}

// Fixed returns the fixed day number of the date.
func (d Date) Fixed() int64 {
	return ToFixed(d.Year, d.Month, d.Day)
}

// ToFixed converts a Hebrew date to a fixed day number without validating it.
func ToFixed(year, month, day int) int64 {
	var days int64
	if month < Tishri {
		for m := Tishri; m <= LastMonthOfYear(year); m++ {
			days += int64(LastDayOfMonth(year, m))
		}
		for m := Nisan; m < month; m++ {
			days += int64(LastDayOfMonth(year, m))
		}
	} else {
		for m := Tishri; m < month; m++ {
			days += int64(LastDayOfMonth(year, m))
		}
	}
	return NewYear(year) + int64(day) - 1 + days
}

// FromFixed converts a fixed day number to a Hebrew date. The year search
// is bounded, and its failure is returned as ErrSearchDidNotConverge.
func FromFixed(rd int64) (Date, error) {
	approx := rdmath.FloorDiv(98496*(rd-epoch.Hebrew), 35975351) + 1
	y, err := rdmath.MaxInt(approx-1, func(y int64) bool {
		return NewYear(int(y)) <= rd
	})
	if err != nil {
		return Date{}, fmt.Errorf("hebrew year of day %d: %w", rd, err)
	}
	year := int(y)

	start := Tishri
	if rd >= ToFixed(year, Nisan, 1) {
		start = Nisan
	}
	month := start
	for m := start; m <= LastMonthOfYear(year); m++ {
		month = m
		if rd <= ToFixed(year, m, LastDayOfMonth(year, m)) {
			break
		}
	}
	day := int(rd-ToFixed(year, month, 1)) + 1
	return Date{Year: year, Month: month, Day: day}, nil
}

// FirstFixed and LastFixed bound the fixed days of years MinYear..MaxYear.
var (
	FirstFixed = NewYear(MinYear)
	LastFixed  = NewYear(MaxYear+1) - 1
)

func (d Date) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, MonthName(d.Year, d.Month), d.Year)
}
