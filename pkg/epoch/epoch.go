// Package epoch holds the R.D. epoch of every calendar known to the engine
// and the conversions between R.D. and the continuous day counts (Julian day,
// modified Julian day, Unix time).
package epoch

import (
	"fmt"
	"sort"

	"github.com/chrissnell/univtime/pkg/rdmath"
)

// Epochs as fixed day numbers. Day 1 is 0001-01-01 in the proleptic
// Gregorian calendar.
const (
	Gregorian         = 1
	Julian            = -1
	Hebrew            = -1373427
	Chinese           = -963099
	Unix              = 719163
	ISO8601           = 1
	JulianDayNumber   = -1721424.5
	ModifiedJulianDay = 678576
)

// Day names indexed by Weekday.
var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var table = map[string]float64{
	"gregorian":            Gregorian,
	"julian":               Julian,
	"hebrew":               Hebrew,
	"chinese":              Chinese,
	"unix":                 Unix,
	"iso-8601":             ISO8601,
	"julian-day-number":    JulianDayNumber,
	"modified-julian-day":  ModifiedJulianDay,
	"mayan":                -1137142,
	"hindu-kali-yuga":      -1132959,
	"samaritan":            -598573,
	"egyptian":             -272787,
	"babylonian":           -113502,
	"tibetan":              -46410,
	"akan":                 37,
	"ethiopic":             2796,
	"coptic":               103605,
	"armenian":             201443,
	"persian":              226896,
	"islamic":              227015,
	"zoroastrian":          230638,
	"french-revolutionary": 654415,
	"baha-i":               673222,
}

// Lookup returns the R.D. epoch registered under name.
func Lookup(name string) (float64, bool) {
	rd, ok := table[name]
	return rd, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) float64 {
	rd, ok := table[name]
	if !ok {
		panic(fmt.Sprintf("epoch: unknown calendar %q", name))
	}
	return rd
}

// Names lists the registered calendars in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FixedFromJD converts a Julian day to an R.D. moment.
func FixedFromJD(jd float64) float64 {
	return jd + JulianDayNumber
}

// JDFromFixed converts an R.D. moment to a Julian day.
func JDFromFixed(rd float64) float64 {
	return rd - JulianDayNumber
}

// FixedFromMJD converts a modified Julian day to R.D.
func FixedFromMJD(mjd float64) float64 {
	return mjd + ModifiedJulianDay
}

// MJDFromFixed converts an R.D. moment to a modified Julian day.
func MJDFromFixed(rd float64) float64 {
	return rd - ModifiedJulianDay
}

// FixedFromUnix converts seconds since 1970-01-01T00:00:00Z to an R.D. moment.
func FixedFromUnix(s float64) float64 {
	return Unix + s/86400
}

// UnixFromFixed converts an R.D. moment to seconds since the Unix epoch.
func UnixFromFixed(rd float64) float64 {
	return 86400 * (rd - Unix)
}

// Weekday returns the day of the week of a fixed date, 0 being Sunday.
func Weekday(rd int64) int {
	return int(rdmath.Mod(rd, 7))
}

// DayName returns the English name of the weekday of a fixed date.
func DayName(rd int64) string {
	return dayNames[Weekday(rd)]
}
