package astro

import (
	"math"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/rdmath"
	"gonum.org/v1/gonum/floats"
)

// Solar longitudes of the equinoxes and solstices, in degrees.
const (
	Spring = 0.0
	Summer = 90.0
	Autumn = 180.0
	Winter = 270.0
)

// solarSearchPrecision is the width, in days, at which crossing searches stop.
const solarSearchPrecision = 1e-5

// maxSolarReversals bounds how often SolarLongitudeAfter may pass the
// crossing. Halving from one day reaches solarSearchPrecision in 17.
const maxSolarReversals = 64

// SolarLongitude returns the apparent ecliptic longitude of the Sun at
// moment t, in degrees [0, 360).
func SolarLongitude(t float64) float64 {
	c := JulianCenturies(t)

	terms := solarScratch.Get().(*[len(solarTerms)]float64)
	defer solarScratch.Put(terms)
	for i, term := range solarTerms {
		terms[i] = term.amplitude * rdmath.SinDeg(term.phase+term.rate*c)
	}
	lambda := 282.7771834 + 36000.76953744*c + 0.000005729577951308232*floats.Sum(terms[:])

	return rdmath.ModF(lambda+Aberration(t)+Nutation(t), 360)
}

// Nutation returns the longitudinal nutation at moment t, in degrees.
func Nutation(t float64) float64 {
	c := JulianCenturies(t)
	a := rdmath.Poly(c, []float64{124.90, -1934.134, 0.002063})
	b := rdmath.Poly(c, []float64{201.11, 72001.5377, 0.00057})
	return -0.004778*rdmath.SinDeg(a) - 0.0003667*rdmath.SinDeg(b)
}

// Aberration returns the displacement of the Sun caused by the Earth's
// motion at moment t, in degrees.
func Aberration(t float64) float64 {
	c := JulianCenturies(t)
	return 0.0000974*rdmath.CosDeg(177.63+35999.01848*c) - 0.005575
}

// Obliquity returns the mean obliquity of the ecliptic at moment t, in degrees.
func Obliquity(t float64) float64 {
	c := JulianCenturies(t)
	return rdmath.Angle(23, 26, 21.448) + rdmath.Poly(c, []float64{0, -46.8150, -0.00059, 0.001813})/3600
}

// EquationOfTime returns apparent minus mean solar time at moment t as a
// fraction of a day. The magnitude never exceeds half a day.
func EquationOfTime(t float64) float64 {
	c := JulianCenturies(t)
	lambda := rdmath.Poly(c, []float64{280.46645, 36000.76983, 0.0003032})
	anomaly := rdmath.Poly(c, []float64{357.52910, 35999.05030, -0.0001559, -0.00000048})
	eccentricity := rdmath.Poly(c, []float64{0.016708617, -0.000042037, -0.0000001236})
	y := math.Pow(rdmath.TanDeg(Obliquity(t)/2), 2)

	equation := (1 / (2 * math.Pi)) * (y*rdmath.SinDeg(2*lambda) -
		2*eccentricity*rdmath.SinDeg(anomaly) +
		4*eccentricity*y*rdmath.SinDeg(anomaly)*rdmath.CosDeg(2*lambda) -
		0.5*y*y*rdmath.SinDeg(4*lambda) -
		1.25*eccentricity*eccentricity*rdmath.SinDeg(2*anomaly))

	return rdmath.Sign(equation) * math.Min(math.Abs(equation), 0.5)
}

// SolarLongitudeAfter returns the first moment at or after t when the solar
// longitude reaches lambda degrees. The mean tropical-year rate gives an
// estimate; the search then steps toward the crossing and halves its step
// each time it passes it, until the step is below solarSearchPrecision.
func SolarLongitudeAfter(lambda, t float64) (float64, error) {
	rate := MeanTropicalYear / 360
	offset := func(x float64) float64 {
		return rdmath.ModRange(SolarLongitude(x)-lambda, -180, 180)
	}

	x := t + rate*rdmath.ModF(lambda-SolarLongitude(t), 360)
	d := offset(x)
	dir := 1.0
	if d > 0 {
		dir = -1
	}
	step := 1.0
	reversals := 0
	for i := 0; i < rdmath.MaxSearchSteps; i++ {
		if d == 0 {
			return x, nil
		}
		if step < solarSearchPrecision {
			if d < 0 {
				// The crossing lies within the previous step.
				return x + 2*step, nil
			}
			return x, nil
		}
		x = math.Max(t, x+dir*step)
		d = offset(x)
		if rdmath.Sign(d) == dir {
			reversals++
			if reversals > maxSolarReversals {
				break
			}
			dir = -dir
			step /= 2
		}
	}
	return 0, calerr.NotConverged("solar longitude %v after %v", lambda, t)
}

// EstimatePriorSolarLongitude approximates the last moment before t when
// the solar longitude was lambda degrees. The result is within about a day.
func EstimatePriorSolarLongitude(lambda, t float64) float64 {
	rate := MeanTropicalYear / 360
	tau := t - rate*rdmath.ModF(SolarLongitude(t)-lambda, 360)
	delta := rdmath.ModRange(SolarLongitude(tau)-lambda, -180, 180)
	return math.Min(t, tau-rate*delta)
}

// SeasonInGregorian returns the moment of the equinox or solstice at
// solar longitude season during Gregorian year.
func SeasonInGregorian(season float64, year int) (float64, error) {
	return SolarLongitudeAfter(season, float64(gregorian.NewYear(year)))
}

// SeasonOnOrAfter returns the first moment at or after t when the solar
// longitude reaches season.
func SeasonOnOrAfter(season, t float64) (float64, error) {
	return SolarLongitudeAfter(season, t)
}
