package moment

import (
	"fmt"
	"strings"

	"github.com/chrissnell/univtime/pkg/calerr"
)

// Precision is the declared resolution of a Moment. Its value is the
// ordering rank: a larger Precision is finer.
type Precision int

const (
	BillionYears  Precision = 1
	MillionYears  Precision = 2
	ThousandYears Precision = 3
	Year          Precision = 6
	Month         Precision = 7
	Day           Precision = 8
	Hour          Precision = 9
	Minute        Precision = 10
	Second        Precision = 11
	Millisecond   Precision = 12
	Microsecond   Precision = 13
	Nanosecond    Precision = 14
	Picosecond    Precision = 15
	Femtosecond   Precision = 16
	Attosecond    Precision = 17
)

type precisionAtts struct {
	name   string
	abbrev string
	power  int
	scaled bool // power is meaningful
}

var precisions = map[Precision]precisionAtts{
	BillionYears:  {"billion-years", "G-yr", 9, true},
	MillionYears:  {"million-years", "M-yr", 6, true},
	ThousandYears: {"thousand-years", "k-yr", 3, true},
	Year:          {"year", "yr", 0, true},
	Month:         {"month", "mo", 0, false},
	Day:           {"day", "day", 0, false},
	Hour:          {"hour", "hr", 0, false},
	Minute:        {"minute", "min", 0, false},
	Second:        {"second", "s", 0, true},
	Millisecond:   {"millisecond", "ms", -3, true},
	Microsecond:   {"microsecond", "μs", -6, true},
	Nanosecond:    {"nanosecond", "ns", -9, true},
	Picosecond:    {"picosecond", "ps", -12, true},
	Femtosecond:   {"femtosecond", "fs", -15, true},
	Attosecond:    {"attosecond", "as", -18, true},
}

// Precisions lists every level from coarsest to finest.
func Precisions() []Precision {
	return []Precision{
		BillionYears, MillionYears, ThousandYears, Year, Month, Day, Hour, Minute,
		Second, Millisecond, Microsecond, Nanosecond, Picosecond, Femtosecond, Attosecond,
	}
}

// Valid reports whether p is one of the enumerated levels.
func (p Precision) Valid() bool {
	_, ok := precisions[p]
	return ok
}

// Rank returns the ordering rank used in lexical keys.
func (p Precision) Rank() int {
	return int(p)
}

// Power returns the power of ten the level scales years or seconds by.
// Month through minute have no power.
func (p Precision) Power() (int, bool) {
	a, ok := precisions[p]
	if !ok || !a.scaled {
		return 0, false
	}
	return a.power, true
}

// Abbrev returns the SI style abbreviation of the level.
func (p Precision) Abbrev() string {
	return precisions[p].abbrev
}

func (p Precision) String() string {
	if a, ok := precisions[p]; ok {
		return a.name
	}
	return fmt.Sprintf("precision(%d)", int(p))
}

// places returns the number of decimal places kept in the seconds field.
func (p Precision) places() int32 {
	if p <= Second {
		return 0
	}
	return int32(-precisions[p].power)
}

// ParsePrecision accepts a level name or abbreviation.
func ParsePrecision(s string) (Precision, error) {
	for _, p := range Precisions() {
		a := precisions[p]
		if strings.EqualFold(s, a.name) || s == a.abbrev {
			return p, nil
		}
	}
	return 0, calerr.InvalidPrecision("unknown precision %q", s)
}

// atOrCoarser returns the finest level whose rank does not exceed rank.
func atOrCoarser(rank int) Precision {
	levels := Precisions()
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i].Rank() <= rank {
			return levels[i]
		}
	}
	return BillionYears
}

// resolve applies the construction rule for a declared precision against
// the finest field supplied. Zero means no declaration.
func resolve(declared, supplied Precision) (Precision, error) {
	switch {
	case declared == 0:
		return supplied, nil
	case !declared.Valid():
		return 0, calerr.InvalidPrecision("unknown precision %d", int(declared))
	case declared == supplied:
		return declared, nil
	case declared < supplied:
		return 0, calerr.InvalidPrecision("%v is coarser than the %v supplied", declared, supplied)
	case supplied == Second:
		return declared, nil
	}
	return 0, calerr.InvalidPrecision("%v is finer than the %v supplied", declared, supplied)
}
