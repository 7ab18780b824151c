package chinese

import (
	"fmt"

	"github.com/chrissnell/univtime/pkg/rdmath"
)

const (
	monthNameEpoch = 57
	dayNameEpoch   = 45
)

var stems = [10]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}

var branches = [12]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}

// Name is a position in the sexagesimal cycle: a celestial stem (1..10)
// paired with a terrestrial branch (1..12).
type Name struct {
	Stem   int
	Branch int
}

// SexagesimalName returns the n-th name of the cycle.
func SexagesimalName(n int64) Name {
	return Name{Stem: int(rdmath.AMod(n, 10)), Branch: int(rdmath.AMod(n, 12))}
}

// NameDifference returns the number of names (1..60) from a to b.
func NameDifference(a, b Name) int {
	stemDiff := int64(b.Stem - a.Stem)
	branchDiff := int64(b.Branch - a.Branch)
	return int(rdmath.AMod(stemDiff+25*(branchDiff-stemDiff), 60))
}

// YearName returns the name of a year within its cycle.
func YearName(year int) Name {
	return SexagesimalName(int64(year))
}

// MonthName returns the name of a month in a year of the cycle.
func MonthName(month, year int) Name {
	elapsed := int64(12*(year-1) + month - 1)
	return SexagesimalName(elapsed - monthNameEpoch)
}

// DayName returns the name of a fixed date.
func DayName(date int64) Name {
	return SexagesimalName(date - dayNameEpoch)
}

// DayNameOnOrBefore returns the last fixed date on or before date that
// carries the given name.
func DayNameOnOrBefore(name Name, date int64) int64 {
	x := int64(NameDifference(DayName(0), name))
	return date + rdmath.Mod(x-date, -60)
}

// StemName returns the romanized name of a celestial stem.
func StemName(stem int) string {
	if stem < 1 || stem > len(stems) {
		return ""
	}
	return stems[stem-1]
}

// BranchName returns the romanized name of a terrestrial branch.
func BranchName(branch int) string {
	if branch < 1 || branch > len(branches) {
		return ""
	}
	return branches[branch-1]
}

func (n Name) String() string {
	return fmt.Sprintf("%s-%s", StemName(n.Stem), BranchName(n.Branch))
}
