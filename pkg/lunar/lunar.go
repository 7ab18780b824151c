// Package lunar describes the phase of the Moon at an instant: its
// elongation, illuminated fraction, age and the surrounding new and full
// moons, all derived from the astronomical engine.
package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/univtime/pkg/astro"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = astro.MeanSynodicMonth

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Phase        float64 // Phase fraction [0,1): 0=new, 0.5=full
	Elongation   float64 // Sun→Moon angle in degrees [0,360)
	Illumination float64 // Illuminated fraction [0,1]: 0=new, 1=full
	AgeDays      float64 // Days since new moon [0,SynodicMonth)
	IsWaxing     bool    // True when moon is waxing (getting fuller)
	PhaseName    string  // Human-readable phase name
}

// Calculate computes the moon phase for a given UTC timestamp
func Calculate(t time.Time) MoonPhase {
	elongation := astro.LunarPhase(fixedFromTime(t))
	phase := elongation / 360.0
	illumination := (1 - math.Cos(elongation*math.Pi/180)) / 2
	isWaxing := elongation < 180

	return MoonPhase{
		Phase:        phase,
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      phase * SynodicMonth,
		IsWaxing:     isWaxing,
		PhaseName:    phaseName(illumination, isWaxing),
	}
}

// Lunation brackets an instant between new moons and gives the full moon
// that follows it.
type Lunation struct {
	PreviousNewMoon time.Time
	NextNewMoon     time.Time
	NextFullMoon    time.Time
}

// Bracket returns the new moons either side of t and the next full moon.
func Bracket(t time.Time) (Lunation, error) {
	rd := fixedFromTime(t)
	prev, err := astro.NewMoonBefore(rd)
	if err != nil {
		return Lunation{}, err
	}
	next, err := astro.NewMoonAtOrAfter(rd)
	if err != nil {
		return Lunation{}, err
	}
	full, err := astro.LunarPhaseAtOrAfter(astro.FullMoon, rd)
	if err != nil {
		return Lunation{}, err
	}
	return Lunation{
		PreviousNewMoon: timeFromFixed(prev),
		NextNewMoon:     timeFromFixed(next),
		NextFullMoon:    timeFromFixed(full),
	}, nil
}

// phaseName returns the 8-phase name based on illumination percentage and direction
func phaseName(illumination float64, isWaxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if isWaxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if isWaxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if isWaxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

func fixedFromTime(t time.Time) float64 {
	return epoch.FixedFromJD(julian.TimeToJD(t))
}

func timeFromFixed(rd float64) time.Time {
	return julian.JDToTime(epoch.JDFromFixed(rd)).UTC()
}
