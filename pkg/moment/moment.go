// Package moment implements Moment, an absolute instant on the R.D. time
// axis with a declared precision. Moments span geological ages through
// attoseconds, share a single total order, and project onto any of the
// supported calendars.
package moment

import (
	"fmt"
	"time"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/shopspring/decimal"
)

var (
	sixty         = decimal.NewFromInt(60)
	secondsPerDay = decimal.NewFromInt(86400)
	daysPerYear   = decimal.RequireFromString("365.25")
	dayLimit      = decimal.New(1, 17)
)

// Moment is an instant: a whole R.D. day, a UTC time of day and a
// precision. The zero Moment is midnight of R.D. 0 at an invalid
// precision; build Moments with the constructors.
type Moment struct {
	day       decimal.Decimal
	hour      int
	minute    int
	second    decimal.Decimal
	precision Precision
	origin    bool
}

// BeginningOfTime returns the sentinel that precedes every other Moment.
func BeginningOfTime() Moment {
	return Moment{origin: true, precision: Year}
}

// New validates the time of day and builds a Moment. A fractional day is
// carried into the time of day, and seconds are truncated to the decimal
// places p resolves.
func New(day decimal.Decimal, hour, minute int, second decimal.Decimal, p Precision) (Moment, error) {
	if !p.Valid() {
		return Moment{}, calerr.InvalidPrecision("unknown precision %d", int(p))
	}
	if err := checkClock(hour, minute, second); err != nil {
		return Moment{}, err
	}
	if day.Abs().GreaterThanOrEqual(dayLimit) {
		return Moment{}, calerr.InvalidDate("day %s outside ±10^17", day)
	}
	return normalize(day, int64(hour), int64(minute), second, p), nil
}

func checkClock(hour, minute int, second decimal.Decimal) error {
	if hour < 0 || hour > 23 {
		return calerr.InvalidDate("hour %d outside 0..23", hour)
	}
	if minute < 0 || minute > 59 {
		return calerr.InvalidDate("minute %d outside 0..59", minute)
	}
	if second.Sign() < 0 || second.GreaterThanOrEqual(sixty) {
		return calerr.InvalidDate("second %s outside [0, 60)", second)
	}
	return nil
}

// normalize carries every component into range with floor semantics.
func normalize(day decimal.Decimal, hour, minute int64, second decimal.Decimal, p Precision) Moment {
	whole := day.Floor()
	if frac := day.Sub(whole); !frac.IsZero() {
		second = second.Add(frac.Mul(secondsPerDay))
	}

	carry, second := floorQuoRem(second, sixty)
	minute += carry.IntPart()
	carryMinutes, minute := floorDivMod(minute, 60)
	hour += carryMinutes
	carryHours, hour := floorDivMod(hour, 24)
	whole = whole.Add(decimal.NewFromInt(carryHours))

	return Moment{
		day:       whole,
		hour:      int(hour),
		minute:    int(minute),
		second:    second.Truncate(p.places()),
		precision: p,
	}
}

func floorQuoRem(x, base decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	q, r := x.QuoRem(base, 0)
	if r.Sign() < 0 {
		q = q.Sub(decimal.NewFromInt(1))
		r = r.Add(base)
	}
	return q, r
}

func floorDivMod(a, b int64) (int64, int64) {
	q, r := a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// FromTime converts t to a Moment of microsecond precision.
func FromTime(t time.Time) Moment {
	t = t.UTC()
	rd := gregorian.ToFixed(t.Year(), int(t.Month()), t.Day())
	second := decimal.NewFromInt(int64(t.Second())).Add(decimal.New(int64(t.Nanosecond()), -9))
	return normalize(decimal.NewFromInt(rd), int64(t.Hour()), int64(t.Minute()), second, Microsecond)
}

// Now returns the current instant.
func Now() Moment {
	return FromTime(time.Now())
}

// FromUnix converts seconds since the Unix epoch to a Moment of
// nanosecond precision.
func FromUnix(seconds decimal.Decimal) (Moment, error) {
	days := seconds.Div(secondsPerDay).Floor()
	if days.Abs().GreaterThanOrEqual(dayLimit) {
		return Moment{}, calerr.InvalidDate("unix time %s out of range", seconds)
	}
	return normalize(decimal.NewFromInt(epoch.Unix), 0, 0, seconds, Nanosecond), nil
}

// FromJulianDayNumber converts a Julian day number, which begins at noon,
// to a Moment of hour precision.
func FromJulianDayNumber(jdn decimal.Decimal) (Moment, error) {
	day := jdn.Add(decimal.NewFromFloat(epoch.JulianDayNumber))
	if day.Abs().GreaterThanOrEqual(dayLimit) {
		return Moment{}, calerr.InvalidDate("julian day number %s out of range", jdn)
	}
	return normalize(day, 0, 0, decimal.Zero, Hour), nil
}

// FromGeological places a time yearsAgo units of p before the Unix epoch,
// counting 365.25 days to the year. The sign of yearsAgo is ignored and p
// must be Year or coarser.
func FromGeological(yearsAgo decimal.Decimal, p Precision) (Moment, error) {
	if !p.Valid() || p > Year {
		return Moment{}, calerr.InvalidPrecision("%v is finer than a year", p)
	}
	power, _ := p.Power()
	years := yearsAgo.Abs().Shift(int32(power)).Truncate(0)
	day := decimal.NewFromInt(epoch.Unix).Sub(years.Mul(daysPerYear))
	if day.Abs().GreaterThanOrEqual(dayLimit) {
		return Moment{}, calerr.InvalidDate("%s years ago out of range", years)
	}
	return normalize(day, 0, 0, decimal.Zero, p), nil
}

// Day returns the R.D. day. It is meaningless for BeginningOfTime.
func (m Moment) Day() decimal.Decimal { return m.day }

// Clock returns the UTC time of day.
func (m Moment) Clock() (hour, minute int, second decimal.Decimal) {
	return m.hour, m.minute, m.second
}

// Precision returns the declared precision.
func (m Moment) Precision() Precision { return m.precision }

// IsBeginningOfTime reports whether m is the sentinel.
func (m Moment) IsBeginningOfTime() bool { return m.origin }

// Fixed returns the R.D. day as an integer, or false for the sentinel.
func (m Moment) Fixed() (int64, bool) {
	if m.origin {
		return 0, false
	}
	return m.day.IntPart(), true
}

// Compare returns -1, 0 or 1 as m is before, equal to or after o. The
// order is lexicographic on day, hour, minute and second; precision does
// not take part.
func (m Moment) Compare(o Moment) int {
	switch {
	case m.origin && o.origin:
		return 0
	case m.origin:
		return -1
	case o.origin:
		return 1
	}
	if c := m.day.Cmp(o.day); c != 0 {
		return c
	}
	if m.hour != o.hour {
		return sign(m.hour - o.hour)
	}
	if m.minute != o.minute {
		return sign(m.minute - o.minute)
	}
	return m.second.Cmp(o.second)
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

// Before reports whether m precedes o.
func (m Moment) Before(o Moment) bool { return m.Compare(o) < 0 }

// After reports whether m follows o.
func (m Moment) After(o Moment) bool { return m.Compare(o) > 0 }

// Equal reports whether m and o are the same instant.
func (m Moment) Equal(o Moment) bool { return m.Compare(o) == 0 }

func (m Moment) String() string {
	if m.origin {
		return "beginning of time"
	}
	return fmt.Sprintf("RD %s %02d:%02d:%s %s", m.day, m.hour, m.minute,
		formatSecond(m.second, m.precision), m.precision.Abbrev())
}

// formatSecond renders a second with two integer digits and the decimal
// places of p.
func formatSecond(s decimal.Decimal, p Precision) string {
	out := s.StringFixed(p.places())
	if s.LessThan(decimal.NewFromInt(10)) {
		out = "0" + out
	}
	return out
}
