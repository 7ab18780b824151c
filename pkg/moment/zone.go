package moment

import (
	"time"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/gregorian"
)

// StandardTimeYear is the first year local offsets are applied. Earlier
// dates predate standardized time zones and are always treated as UTC.
const StandardTimeYear = 1847

// ZoneLookup supplies the UTC offset in effect in a zone on a civil date.
type ZoneLookup interface {
	UTCOffset(date gregorian.Date, zone string) (hours, minutes int, err error)
}

// TZDatabase answers ZoneLookup from the system time zone database.
type TZDatabase struct{}

// UTCOffset returns the offset at noon of date in zone.
func (TZDatabase) UTCOffset(date gregorian.Date, zone string) (int, int, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, 0, calerr.UnsupportedConversion("time zone %q: %v", zone, err)
	}
	_, offset := time.Date(date.Year, time.Month(date.Month), date.Day, 12, 0, 0, 0, loc).Zone()
	return offset / 3600, (offset % 3600) / 60, nil
}

// InZone returns the Gregorian view of m in the local time of zone. The
// offset is looked up for m's UTC civil date.
func (m Moment) InZone(lookup ZoneLookup, zone string) (View, error) {
	if m.origin {
		return View{}, calerr.UnsupportedConversion("the beginning of time has no local time")
	}
	rd := m.day.IntPart()
	if !inRange(rd, gregorianRange) {
		return View{}, calerr.InvalidDate("day %d outside the gregorian calendar range", rd)
	}

	var hours, minutes int
	if date := gregorian.FromFixed(rd); date.Year >= StandardTimeYear {
		var err error
		if hours, minutes, err = lookup.UTCOffset(date, zone); err != nil {
			return View{}, err
		}
	}

	local := m.Add(Delta{Hours: hours, Minutes: minutes})
	v, err := local.In(Gregorian)
	if err != nil {
		return View{}, err
	}
	v.Zone = zone
	v.OffsetHours, v.OffsetMinutes = hours, minutes
	return v, nil
}

// FromLocal reads m as civil time in zone and returns the same instant in
// UTC. The offset is the one zone observes on m's local civil date, so a
// time inside a daylight-saving fold takes the offset in effect at noon.
// Dates before StandardTimeYear keep a zero offset. m must be resolved at
// least to the hour.
func FromLocal(m Moment, lookup ZoneLookup, zone string) (Moment, error) {
	if m.origin {
		return Moment{}, calerr.UnsupportedConversion("the beginning of time has no local time")
	}
	if m.precision < Hour {
		return Moment{}, calerr.InvalidPrecision("local time in %s needs an hour, got %v precision", zone, m.precision)
	}
	rd := m.day.IntPart()
	if !inRange(rd, gregorianRange) {
		return Moment{}, calerr.InvalidDate("day %d outside the gregorian calendar range", rd)
	}

	date := gregorian.FromFixed(rd)
	if date.Year < StandardTimeYear {
		return m, nil
	}
	hours, minutes, err := lookup.UTCOffset(date, zone)
	if err != nil {
		return Moment{}, err
	}
	return m.Sub(Delta{Hours: hours, Minutes: minutes}), nil
}
