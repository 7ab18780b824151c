// Package astro provides the astronomical functions the lunisolar calendars
// depend on: ephemeris correction between Universal and Dynamical Time,
// solar and lunar longitude, lunar phase and new-moon search. Moments are
// real-valued fixed day numbers (R.D.) in Universal Time unless noted.
package astro

import (
	"math"

	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

const (
	// MeanTropicalYear is the mean length of the tropical year in days.
	MeanTropicalYear = 365.242189

	// MeanSynodicMonth is the mean time between new moons in days.
	MeanSynodicMonth = 29.530588861

	// J2000 is noon of 2000-01-01 as a fixed moment.
	J2000 = 730120.5
)

// EphemerisCorrection returns Dynamical Time minus Universal Time, in days,
// at moment t. The polynomial used depends on the Gregorian year of t.
func EphemerisCorrection(t float64) float64 {
	year := gregorian.YearFromFixed(int64(math.Floor(t)))
	y := float64(year)

	switch {
	case year >= 2051 && year <= 2150:
		u := (y - 1820) / 100
		return (-20 + 32*u*u + 0.5628*(2150-y)) / 86400
	case year >= 2006 && year <= 2050:
		return rdmath.Poly(y-2000, []float64{62.92, 0.32217, 0.005589}) / 86400
	case year >= 1987 && year <= 2005:
		return rdmath.Poly(y-2000, []float64{63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599}) / 86400
	case year >= 1900 && year <= 1986:
		return rdmath.Poly(centuriesFrom1900(year), []float64{-0.00002, 0.000297, 0.025184, -0.181133, 0.553040, -0.861938, 0.677066, -0.212591})
	case year >= 1800 && year <= 1899:
		return rdmath.Poly(centuriesFrom1900(year), []float64{-0.000009, 0.003844, 0.083563, 0.865736, 4.867575, 15.845535, 31.332267, 38.291999, 28.316289, 11.636204, 2.043794})
	case year >= 1700 && year <= 1799:
		return rdmath.Poly(y-1700, []float64{8.118780842, -0.005092142, 0.003336121, -0.0000266484}) / 86400
	case year >= 1600 && year <= 1699:
		return rdmath.Poly(y-1600, []float64{120, -0.9808, -0.01532, 0.000140272128}) / 86400
	case year >= 500 && year <= 1599:
		return rdmath.Poly((y-1000)/100, []float64{1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073}) / 86400
	case year > -500 && year < 500:
		return rdmath.Poly(y/100, []float64{10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521}) / 86400
	}
	u := (y - 1820) / 100
	return (-20 + 32*u*u) / 86400
}

// centuriesFrom1900 measures July 1 of year in Julian centuries from 1900-01-01.
func centuriesFrom1900(year int) float64 {
	from := gregorian.Date{Year: 1900, Month: 1, Day: 1}
	to := gregorian.Date{Year: year, Month: 7, Day: 1}
	return float64(gregorian.DateDifference(from, to)) / 36525
}

// DynamicalFromUniversal converts a Universal Time moment to Dynamical Time.
func DynamicalFromUniversal(t float64) float64 {
	return t + EphemerisCorrection(t)
}

// UniversalFromDynamical converts a Dynamical Time moment to Universal Time.
func UniversalFromDynamical(t float64) float64 {
	return t - EphemerisCorrection(t)
}

// JulianCenturies returns Dynamical Time centuries since J2000 at moment t.
func JulianCenturies(t float64) float64 {
	return (DynamicalFromUniversal(t) - J2000) / 36525
}
