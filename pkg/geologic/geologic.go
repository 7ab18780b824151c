// Package geologic places times measured in millions of years ago on the
// GSA geologic time scale.
package geologic

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v2"
)

// Rank is the level of a unit in the time scale hierarchy.
type Rank int

const (
	Eon Rank = iota
	Era
	Period
	Epoch
)

func (r Rank) String() string {
	switch r {
	case Eon:
		return "eon"
	case Era:
		return "era"
	case Period:
		return "period"
	case Epoch:
		return "epoch"
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Unit is one named interval of the time scale. Start is the older
// boundary, so Start > End.
type Unit struct {
	Name     string  `yaml:"name"`
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Children []Unit  `yaml:"children,omitempty"`
	Rank     Rank    `yaml:"-"`
}

// Contains reports whether ma falls within the unit. A shared boundary
// belongs to the younger unit, and the present belongs to the youngest.
func (u Unit) Contains(ma float64) bool {
	if ma > u.Start {
		return false
	}
	return ma > u.End || (u.End == 0 && ma == 0)
}

// Placement names the units containing a time. Ranks the scale does not
// subdivide to at that time are left empty.
type Placement struct {
	Eon    string `json:"eon,omitempty"`
	Era    string `json:"era,omitempty"`
	Period string `json:"period,omitempty"`
	Epoch  string `json:"epoch,omitempty"`
}

//go:embed timescale.yaml
var timescaleYAML []byte

type timescale struct {
	Version string `yaml:"version"`
	Units   []Unit `yaml:"units"`
}

var (
	loadOnce sync.Once
	scale    timescale
	byRank   map[Rank][]Unit
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(timescaleYAML, &scale); err != nil {
			panic(fmt.Sprintf("geologic: cannot parse time scale: %v", err))
		}
		byRank = make(map[Rank][]Unit)
		if err := index(scale.Units, Eon, nil); err != nil {
			panic(fmt.Sprintf("geologic: invalid time scale: %v", err))
		}
	})
}

// index assigns ranks and checks that siblings are contiguous and nested
// inside their parent.
func index(units []Unit, rank Rank, parent *Unit) error {
	if rank > Epoch {
		return fmt.Errorf("units nested below %v", Epoch)
	}
	for i := range units {
		u := &units[i]
		u.Rank = rank
		if u.Start <= u.End {
			return fmt.Errorf("%s starts at %v Ma, after it ends at %v Ma", u.Name, u.Start, u.End)
		}
		if parent != nil && (u.Start > parent.Start || u.End < parent.End) {
			return fmt.Errorf("%s lies outside %s", u.Name, parent.Name)
		}
		if i > 0 && units[i-1].End != u.Start {
			return fmt.Errorf("gap between %s and %s", units[i-1].Name, u.Name)
		}
		if err := index(u.Children, rank+1, u); err != nil {
			return err
		}
		byRank[rank] = append(byRank[rank], *u)
	}
	return nil
}

// Version returns the edition of the embedded time scale.
func Version() string {
	load()
	return scale.Version
}

// Lookup returns the units containing a time ma million years ago. Times
// in the future or before the Hadean return an empty Placement.
func Lookup(ma float64) Placement {
	load()

	var p Placement
	units := scale.Units
	for rank := Eon; rank <= Epoch; rank++ {
		var found *Unit
		for i := range units {
			if units[i].Contains(ma) {
				found = &units[i]
				break
			}
		}
		if found == nil {
			break
		}
		switch rank {
		case Eon:
			p.Eon = found.Name
		case Era:
			p.Era = found.Name
		case Period:
			p.Period = found.Name
		case Epoch:
			p.Epoch = found.Name
		}
		units = found.Children
	}
	return p
}

// Units lists the units of a rank from oldest to youngest.
func Units(rank Rank) []Unit {
	load()
	out := make([]Unit, len(byRank[rank]))
	copy(out, byRank[rank])
	return out
}
