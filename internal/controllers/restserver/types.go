package restserver

import (
	"github.com/chrissnell/univtime/internal/store"
	"github.com/chrissnell/univtime/pkg/geologic"
)

// ConvertResponse is the result of converting a date between calendars.
type ConvertResponse struct {
	From      string              `json:"from"`
	To        string              `json:"to"`
	Input     string              `json:"input"`
	Output    string              `json:"output"`
	Fixed     int64               `json:"fixed"`
	Weekday   string              `json:"weekday"`
	Placement *geologic.Placement `json:"placement,omitempty"`
}

// FixedResponse reports the fixed day of a calendar date.
type FixedResponse struct {
	Calendar  string  `json:"calendar"`
	Date      string  `json:"date"`
	Fixed     int64   `json:"fixed"`
	JulianDay float64 `json:"julian_day"`
	Weekday   string  `json:"weekday"`
}

// MomentResponse explains a lexical key.
type MomentResponse struct {
	Key       string            `json:"key"`
	Moment    string            `json:"moment"`
	Precision string            `json:"precision"`
	Views     map[string]string `json:"views,omitempty"`
	Zone      string            `json:"zone,omitempty"`
	Local     string            `json:"local,omitempty"`
}

// NewMoonResponse brackets a moment between new moons.
type NewMoonResponse struct {
	RD           float64 `json:"rd"`
	Phase        float64 `json:"phase"`
	Previous     float64 `json:"previous"`
	PreviousDate string  `json:"previous_date"`
	Next         float64 `json:"next"`
	NextDate     string  `json:"next_date"`
}

// SolarLongitudeResponse reports the sun's position at a moment.
type SolarLongitudeResponse struct {
	RD        float64 `json:"rd"`
	Longitude float64 `json:"longitude"`
	MajorTerm int     `json:"major_term"`
	MinorTerm int     `json:"minor_term"`
}

// DaylightResponse reports sunrise and sunset in standard time. Polar is set
// when the sun does not rise or does not set that day.
type DaylightResponse struct {
	RD             int64   `json:"rd"`
	Date           string  `json:"date"`
	Sunrise        float64 `json:"sunrise,omitempty"`
	Sunset         float64 `json:"sunset,omitempty"`
	SunriseClock   string  `json:"sunrise_clock,omitempty"`
	SunsetClock    string  `json:"sunset_clock,omitempty"`
	DayLengthHours float64 `json:"day_length_hours,omitempty"`
	Polar          bool    `json:"polar,omitempty"`
}

// ChineseNewYearResponse reports the Chinese New Year in a Gregorian year.
type ChineseNewYearResponse struct {
	Year      int    `json:"year"`
	Fixed     int64  `json:"fixed"`
	Gregorian string `json:"gregorian"`
	Chinese   string `json:"chinese"`
	Name      string `json:"name"`
}

// EpochResponse is one row of the epoch table.
type EpochResponse struct {
	Name string  `json:"name"`
	RD   float64 `json:"rd"`
}

// MomentRequest describes a moment to store, either by key or by a date in
// some calendar with an optional time of day.
type MomentRequest struct {
	Key         string `json:"key,omitempty"`
	Calendar    string `json:"calendar,omitempty"`
	Date        string `json:"date,omitempty"`
	Hour        *int   `json:"hour,omitempty"`
	Minute      *int   `json:"minute,omitempty"`
	Second      string `json:"second,omitempty"`
	Precision   string `json:"precision,omitempty"`
	Description string `json:"description,omitempty"`

	// Zone reads the clock fields as local time in this zone.
	Zone string `json:"zone,omitempty"`
}

// MomentsResponse lists stored moments in chronological order.
type MomentsResponse struct {
	Count   int            `json:"count"`
	Moments []store.Record `json:"moments"`
}
