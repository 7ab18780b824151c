// Package solar computes sunrise, sunset and twilight for a fixed date at a
// location, using the solar theory in pkg/astro.
package solar

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/univtime/pkg/astro"
	"github.com/chrissnell/univtime/pkg/rdmath"
)

// ErrNoEvent is returned when the Sun never reaches the requested depression
// on the given day (polar day or polar night).
var ErrNoEvent = errors.New("sun does not reach the requested depression")

// Depression angles below the horizon, in degrees.
const (
	CivilTwilight        = 6.0
	NauticalTwilight     = 12.0
	AstronomicalTwilight = 18.0
)

const (
	earthRadius = 6.372e6 // meters
	// depressionTolerance is 30 seconds expressed in days.
	depressionTolerance = 30.0 / 86400
	maxIterations       = 32
)

// Declination returns the declination of the Sun at moment t, in degrees.
func Declination(t float64) float64 {
	return rdmath.Degrees(math.Asin(rdmath.SinDeg(astro.Obliquity(t)) * rdmath.SinDeg(astro.SolarLongitude(t))))
}

// Refraction returns the apparent depression of the horizon at loc, in
// degrees, including the dip caused by elevation.
func Refraction(loc astro.Location) float64 {
	h := math.Max(0, loc.Elevation)
	dip := rdmath.Degrees(math.Acos(earthRadius / (earthRadius + h)))
	return rdmath.Angle(0, 34, 0) + dip + rdmath.Angle(0, 0, 19)*math.Sqrt(h)
}

// Sunrise returns the standard-time moment of sunrise at loc on fixed date rd.
func Sunrise(rd int64, loc astro.Location) (float64, error) {
	return Dawn(rd, loc, Refraction(loc)+rdmath.Angle(0, 16, 0))
}

// Sunset returns the standard-time moment of sunset at loc on fixed date rd.
func Sunset(rd int64, loc astro.Location) (float64, error) {
	return Dusk(rd, loc, Refraction(loc)+rdmath.Angle(0, 16, 0))
}

// Dawn returns the standard-time moment in the morning of rd when the Sun's
// center is alpha degrees below the horizon.
func Dawn(rd int64, loc astro.Location, alpha float64) (float64, error) {
	t, err := momentOfDepression(float64(rd)+0.25, loc, alpha, true)
	if err != nil {
		return 0, err
	}
	return standardFromLocal(t, loc), nil
}

// Dusk returns the standard-time moment in the evening of rd when the Sun's
// center is alpha degrees below the horizon.
func Dusk(rd int64, loc astro.Location, alpha float64) (float64, error) {
	t, err := momentOfDepression(float64(rd)+0.75, loc, alpha, false)
	if err != nil {
		return 0, err
	}
	return standardFromLocal(t, loc), nil
}

// DayLength returns the time between sunrise and sunset on rd, in days.
func DayLength(rd int64, loc astro.Location) (float64, error) {
	rise, err := Sunrise(rd, loc)
	if err != nil {
		return 0, err
	}
	set, err := Sunset(rd, loc)
	if err != nil {
		return 0, err
	}
	return set - rise, nil
}

func standardFromLocal(t float64, loc astro.Location) float64 {
	return astro.StandardFromUniversal(astro.UniversalFromLocal(t, loc), loc)
}

func sineOffset(t float64, loc astro.Location, alpha float64) float64 {
	ut := astro.UniversalFromLocal(t, loc)
	delta := Declination(ut)
	return rdmath.TanDeg(loc.Latitude)*rdmath.TanDeg(delta) +
		rdmath.SinDeg(alpha)/(rdmath.CosDeg(delta)*rdmath.CosDeg(loc.Latitude))
}

func approxMomentOfDepression(t float64, loc astro.Location, alpha float64, early bool) (float64, bool) {
	try := sineOffset(t, loc, alpha)
	date := math.Floor(t)

	var alt float64
	switch {
	case alpha >= 0 && early:
		alt = date
	case alpha >= 0:
		alt = date + 1
	default:
		alt = date + 0.5
	}

	value := try
	if math.Abs(try) > 1 {
		value = sineOffset(alt, loc, alpha)
	}
	if math.Abs(value) > 1 {
		return 0, false
	}

	offset := rdmath.ModRange(rdmath.Degrees(math.Asin(value))/360, -0.5, 0.5)
	apparent := date + 0.75 + offset
	if early {
		apparent = date + 0.25 - offset
	}
	return astro.LocalFromApparent(apparent, loc), true
}

func momentOfDepression(approx float64, loc astro.Location, alpha float64, early bool) (float64, error) {
	t := approx
	for i := 0; i < maxIterations; i++ {
		next, ok := approxMomentOfDepression(t, loc, alpha, early)
		if !ok {
			return 0, ErrNoEvent
		}
		if math.Abs(next-t) < depressionTolerance {
			return next, nil
		}
		t = next
	}
	return 0, fmt.Errorf("moment of depression %.2f degrees near %.4f: %w", alpha, approx, ErrNoEvent)
}

// Clock splits the fractional part of moment t into hours and minutes,
// rounded to the nearest minute.
func Clock(t float64) (hour, minute int) {
	minutes := int(math.Round(rdmath.ModF(t, 1)*1440)) % 1440
	return minutes / 60, minutes % 60
}

// FormatSunTime renders the time of day of moment t as a 12-hour clock
// reading such as "6:04 AM".
func FormatSunTime(t float64) string {
	hour, minute := Clock(t)
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, suffix)
}
