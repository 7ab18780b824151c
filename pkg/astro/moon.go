package astro

import (
	"math"

	"github.com/chrissnell/univtime/pkg/rdmath"
	"gonum.org/v1/gonum/floats"
)

// Lunar phase angles, in degrees.
const (
	NewMoon      = 0.0
	FirstQuarter = 90.0
	FullMoon     = 180.0
	LastQuarter  = 270.0
)

// lunationBase counts the new moons from 11 January 1 C.E., which is
// NthNewMoon(0), to the reference new moon of January 2000.
const lunationBase = 24724

// MeanLunarLongitude returns the Moon's mean longitude at c Julian centuries.
func MeanLunarLongitude(c float64) float64 {
	return rdmath.ModF(rdmath.Poly(c, []float64{218.3164477, 481267.88123421, -0.0015786, 1.0 / 538841, -1.0 / 65194000}), 360)
}

// LunarElongation returns the Moon's mean elongation from the Sun.
func LunarElongation(c float64) float64 {
	return rdmath.ModF(rdmath.Poly(c, []float64{297.8501921, 445267.1114034, -0.0018819, 1.0 / 545868, -1.0 / 113065000}), 360)
}

// SolarAnomaly returns the Sun's mean anomaly.
func SolarAnomaly(c float64) float64 {
	return rdmath.ModF(rdmath.Poly(c, []float64{357.5291092, 35999.0502909, -0.0001536, 1.0 / 24490000}), 360)
}

// LunarAnomaly returns the Moon's mean anomaly.
func LunarAnomaly(c float64) float64 {
	return rdmath.ModF(rdmath.Poly(c, []float64{134.9633964, 477198.8675055, 0.0087414, 1.0 / 69699, -1.0 / 14712000}), 360)
}

// MoonNode returns the Moon's argument of latitude.
func MoonNode(c float64) float64 {
	return rdmath.ModF(rdmath.Poly(c, []float64{93.2720950, 483202.0175233, -0.0036539, -1.0 / 3526000, 1.0 / 863310000}), 360)
}

// LunarLongitude returns the Moon's ecliptic longitude at moment t, in degrees.
func LunarLongitude(t float64) float64 {
	c := JulianCenturies(t)
	meanLongitude := MeanLunarLongitude(c)
	elongation := LunarElongation(c)
	solarAnomaly := SolarAnomaly(c)
	lunarAnomaly := LunarAnomaly(c)
	node := MoonNode(c)
	e := rdmath.Poly(c, []float64{1, -0.002516, -0.0000074})

	terms := lunarScratch.Get().(*[len(lunarTerms)]float64)
	defer lunarScratch.Put(terms)
	for i, term := range lunarTerms {
		terms[i] = term.amplitude * math.Pow(e, math.Abs(term.solar)) *
			rdmath.SinDeg(term.elongation*elongation+term.solar*solarAnomaly+term.lunar*lunarAnomaly+term.node*node)
	}
	correction := floats.Sum(terms[:]) / 1000000

	venus := 3958.0 / 1000000 * rdmath.SinDeg(119.75+c*131.849)
	jupiter := 318.0 / 1000000 * rdmath.SinDeg(53.09+c*479264.29)
	flatEarth := 1962.0 / 1000000 * rdmath.SinDeg(meanLongitude-node)

	return rdmath.ModF(meanLongitude+correction+venus+jupiter+flatEarth+Nutation(t), 360)
}

// NthNewMoon returns the moment of the n-th new moon after the new moon of
// 11 January 1 C.E., in Universal Time.
func NthNewMoon(n int64) float64 {
	k := float64(n - lunationBase)
	c := k / 1236.85

	approx := J2000 + rdmath.Poly(c, []float64{5.09766, MeanSynodicMonth * 1236.85, 0.00015437, -0.000000150, 0.00000000073})
	e := rdmath.Poly(c, []float64{1, -0.002516, -0.0000074})
	solarAnomaly := rdmath.Poly(c, []float64{2.5534, 1236.85 * 29.10535670, -0.0000014, -0.00000011})
	lunarAnomaly := rdmath.Poly(c, []float64{201.5643, 385.81693528 * 1236.85, 0.0107582, 0.00001238, -0.000000058})
	moonArgument := rdmath.Poly(c, []float64{160.7108, 390.67050284 * 1236.85, -0.0016118, -0.00000227, 0.000000011})
	omega := rdmath.Poly(c, []float64{124.7746, -1.56375588 * 1236.85, 0.0020672, 0.00000215})

	terms := newMoonScratch.Get().(*[len(newMoonTerms) + 1]float64)
	defer newMoonScratch.Put(terms)
	terms[0] = -0.00017 * rdmath.SinDeg(omega)
	for i, term := range newMoonTerms {
		terms[i+1] = term.amplitude * math.Pow(e, term.eccentricity) *
			rdmath.SinDeg(term.solar*solarAnomaly+term.lunar*lunarAnomaly+term.node*moonArgument)
	}
	correction := floats.Sum(terms[:])

	extra := 0.000325 * rdmath.SinDeg(rdmath.Poly(c, []float64{299.77, 132.8475848, -0.009173}))

	additional := planetaryScratch.Get().(*[len(planetaryTerms)]float64)
	defer planetaryScratch.Put(additional)
	for i, term := range planetaryTerms {
		additional[i] = term.amplitude * rdmath.SinDeg(term.phase+term.rate*k)
	}

	return UniversalFromDynamical(approx + correction + extra + floats.Sum(additional[:]))
}

// LunarPhase returns the Moon's elongation from the Sun at moment t in
// degrees [0, 360): 0 at new moon, 180 at full moon. Where the longitude
// series and the lunation count disagree by more than half a circle, the
// lunation-based estimate wins.
func LunarPhase(t float64) float64 {
	phi := rdmath.ModF(LunarLongitude(t)-SolarLongitude(t), 360)
	t0 := NthNewMoon(0)
	n := int64(rdmath.Round((t - t0) / MeanSynodicMonth))
	phiPrime := 360 * rdmath.ModF((t-NthNewMoon(n))/MeanSynodicMonth, 1)
	if math.Abs(phi-phiPrime) > 180 {
		return phiPrime
	}
	return phi
}

// lunationEstimate guesses the index of the new moon nearest before t.
func lunationEstimate(t float64) int64 {
	t0 := NthNewMoon(0)
	phi := LunarPhase(t)
	return int64(rdmath.Round((t-t0)/MeanSynodicMonth - phi/360))
}

// NewMoonBefore returns the moment of the last new moon strictly before t.
func NewMoonBefore(t float64) (float64, error) {
	n := lunationEstimate(t)
	k, err := rdmath.MaxInt(n-1, func(k int64) bool { return NthNewMoon(k) < t })
	if err != nil {
		return 0, err
	}
	return NthNewMoon(k), nil
}

// NewMoonAtOrAfter returns the moment of the first new moon at or after t.
func NewMoonAtOrAfter(t float64) (float64, error) {
	n := lunationEstimate(t)
	k, err := rdmath.MinInt(n, func(k int64) bool { return NthNewMoon(k) >= t })
	if err != nil {
		return 0, err
	}
	return NthNewMoon(k), nil
}

// LunarPhaseAtOrBefore returns the last moment at or before t when the
// lunar phase was phi degrees.
func LunarPhaseAtOrBefore(phi, t float64) (float64, error) {
	tau := t - MeanSynodicMonth/360*rdmath.ModF(LunarPhase(t)-phi, 360)
	return rdmath.Bisect(tau-2, math.Min(t, tau+2), func(x float64) bool {
		return rdmath.ModF(LunarPhase(x)-phi, 360) < 180
	}, solarSearchPrecision)
}

// LunarPhaseAtOrAfter returns the first moment at or after t when the
// lunar phase reaches phi degrees.
func LunarPhaseAtOrAfter(phi, t float64) (float64, error) {
	tau := t + MeanSynodicMonth/360*rdmath.ModF(phi-LunarPhase(t), 360)
	return rdmath.Bisect(math.Max(t, tau-2), tau+2, func(x float64) bool {
		return rdmath.ModF(LunarPhase(x)-phi, 360) < 180
	}, solarSearchPrecision)
}
