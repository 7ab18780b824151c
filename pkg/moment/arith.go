package moment

import (
	"fmt"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/shopspring/decimal"
)

// Delta is a span of days, hours, minutes and seconds. Components may be
// negative or exceed their base; they are normalized when applied.
type Delta struct {
	Days    decimal.Decimal
	Hours   int
	Minutes int
	Seconds decimal.Decimal
}

func (d Delta) String() string {
	return fmt.Sprintf("%sd %dh %dm %ss", d.Days, d.Hours, d.Minutes, d.Seconds)
}

// Add returns m moved forward by d. The carry runs from seconds upward
// through bases 60, 60 and 24 with floor semantics. BeginningOfTime
// absorbs any delta.
func (m Moment) Add(d Delta) Moment {
	return m.shift(1, d)
}

// Sub returns m moved backward by d.
func (m Moment) Sub(d Delta) Moment {
	return m.shift(-1, d)
}

func (m Moment) shift(s int64, d Delta) Moment {
	if m.origin {
		return m
	}
	sd := decimal.NewFromInt(s)
	return normalize(
		m.day.Add(sd.Mul(d.Days)),
		int64(m.hour)+s*int64(d.Hours),
		int64(m.minute)+s*int64(d.Minutes),
		m.second.Add(sd.Mul(d.Seconds)),
		m.precision,
	)
}

// Since returns the normalized span from o to m: hours, minutes and
// seconds are in range and Days carries the sign.
func (m Moment) Since(o Moment) (Delta, error) {
	if m.origin || o.origin {
		return Delta{}, calerr.InvalidDate("no finite span to the beginning of time")
	}
	n := normalize(
		m.day.Sub(o.day),
		int64(m.hour-o.hour),
		int64(m.minute-o.minute),
		m.second.Sub(o.second),
		Attosecond,
	)
	return Delta{Days: n.day, Hours: n.hour, Minutes: n.minute, Seconds: n.second}, nil
}
