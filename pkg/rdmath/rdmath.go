// Package rdmath provides the integer and real arithmetic used by the
// calendar engines: floor-based division and modulus, adjusted remainders,
// degree trigonometry, polynomial evaluation and bounded searches.
package rdmath

import (
	"math"

	"github.com/chrissnell/univtime/pkg/calerr"
)

// MaxSearchSteps caps every linear search in this module.
const MaxSearchSteps = 1000

// MaxBisections caps every bisection in this module.
const MaxBisections = 100

// FloorDiv returns floor(a / b) for b != 0.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a - b*floor(a/b). The result carries the sign of b.
func Mod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// AMod returns the adjusted remainder: a value in 1..b instead of 0..b-1.
func AMod(a, b int64) int64 {
	return b + Mod(a, -b)
}

// ModF is the real-valued Mod.
func ModF(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// ModRange maps x into the interval [a, b).
func ModRange(x, a, b float64) float64 {
	if a == b {
		return x
	}
	return a + ModF(x-a, b-a)
}

// Round rounds half up, as the calendar algorithms require.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Poly evaluates a[0] + a[1]x + a[2]x^2 + ... by Horner's rule.
func Poly(x float64, a []float64) float64 {
	var r float64
	for i := len(a) - 1; i >= 0; i-- {
		r = r*x + a[i]
	}
	return r
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// SinDeg is sin of an angle in degrees.
func SinDeg(deg float64) float64 { return math.Sin(Radians(deg)) }

// CosDeg is cos of an angle in degrees.
func CosDeg(deg float64) float64 { return math.Cos(Radians(deg)) }

// TanDeg is tan of an angle in degrees.
func TanDeg(deg float64) float64 { return math.Tan(Radians(deg)) }

// Angle converts degrees, arcminutes and arcseconds to decimal degrees.
func Angle(d, m, s float64) float64 {
	return d + (m+s/60)/60
}

// MinInt returns the smallest k near start for which pred holds, assuming
// pred is false below some threshold and true from it onward. The walk
// moves one step at a time in whichever direction start requires.
func MinInt(start int64, pred func(int64) bool) (int64, error) {
	k := start
	if pred(k) {
		for i := 0; i < MaxSearchSteps; i++ {
			if !pred(k - 1) {
				return k, nil
			}
			k--
		}
		return 0, calerr.NotConverged("minimum search from %d", start)
	}
	for i := 0; i < MaxSearchSteps; i++ {
		k++
		if pred(k) {
			return k, nil
		}
	}
	return 0, calerr.NotConverged("minimum search from %d", start)
}

// MaxInt returns the largest k near start for which pred holds, assuming
// pred is true up to some threshold and false after it.
func MaxInt(start int64, pred func(int64) bool) (int64, error) {
	k := start
	if pred(k) {
		for i := 0; i < MaxSearchSteps; i++ {
			if !pred(k + 1) {
				return k, nil
			}
			k++
		}
		return 0, calerr.NotConverged("maximum search from %d", start)
	}
	for i := 0; i < MaxSearchSteps; i++ {
		k--
		if pred(k) {
			return k, nil
		}
	}
	return 0, calerr.NotConverged("maximum search from %d", start)
}

// Bisect narrows [lo, hi] to the point where pred switches from false to
// true and returns the midpoint once the interval is shorter than eps.
func Bisect(lo, hi float64, pred func(float64) bool, eps float64) (float64, error) {
	for i := 0; i < MaxBisections; i++ {
		x := (lo + hi) / 2
		if hi-lo < eps {
			return x, nil
		}
		if math.IsNaN(x) {
			break
		}
		if pred(x) {
			hi = x
		} else {
			lo = x
		}
	}
	return 0, calerr.NotConverged("bisection in [%f, %f]", lo, hi)
}
