package moment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/chinese"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/hebrew"
	"github.com/chrissnell/univtime/pkg/julian"
	"github.com/shopspring/decimal"
)

var (
	ymdPattern     = regexp.MustCompile(`^(-?\d+)-(\d{1,2})-(\d{1,2})$`)
	chinesePattern = regexp.MustCompile(`^(\d+)-(\d{1,2})-(\d{1,2})(?:-?([Ll]))?-(\d{1,2})$`)
)

// ParseDate reads a date written in cal's notation: year-month-day for the
// Gregorian, Julian and Hebrew calendars (a leading minus for negative
// years), cycle-year-month-day for the Chinese calendar with an L after the
// month for a leap month, and a count of years ago for the geological
// calendar. The date is validated.
func ParseDate(cal Calendar, s string) (Date, error) {
	s = strings.TrimSpace(s)
	switch cal {
	case Gregorian, Julian, Hebrew:
		m := ymdPattern.FindStringSubmatch(s)
		if m == nil {
			return nil, calerr.InvalidDate("%q is not a year-month-day date", s)
		}
		n, err := atoi(s, m[1], m[2], m[3])
		if err != nil {
			return nil, err
		}
		y, mo, day := n[0], n[1], n[2]
		var date Date
		switch cal {
		case Gregorian:
			var g gregorian.Date
			g, err = gregorian.New(y, mo, day)
			date = GregorianDate{g}
		case Julian:
			var j julian.Date
			j, err = julian.New(y, mo, day)
			date = JulianDate{j}
		default:
			var h hebrew.Date
			h, err = hebrew.New(y, mo, day)
			date = HebrewDate{h}
		}
		if err != nil {
			return nil, err
		}
		return date, nil
	case Chinese:
		m := chinesePattern.FindStringSubmatch(s)
		if m == nil {
			return nil, calerr.InvalidDate("%q is not a cycle-year-month-day date", s)
		}
		n, err := atoi(s, m[1], m[2], m[3], m[5])
		if err != nil {
			return nil, err
		}
		c, err := chinese.New(n[0], n[1], n[2], m[4] != "", n[3])
		if err != nil {
			return nil, err
		}
		return ChineseDate{c}, nil
	case Geological:
		years, err := decimal.NewFromString(s)
		if err != nil || years.IsNegative() {
			return nil, calerr.InvalidDate("%q is not a count of years ago", s)
		}
		date := GeologicalDate{YearsAgo: years}
		if _, err := date.fixed(); err != nil {
			return nil, err
		}
		return date, nil
	}
	return nil, calerr.UnsupportedConversion("unknown calendar %v", cal)
}

// atoi converts the numeric fields matched in s. A field too large for an
// int is ErrInvalidDate.
func atoi(s string, fields ...string) ([]int, error) {
	n := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, calerr.InvalidDate("%q: field %q is out of range", s, f)
		}
		n[i] = v
	}
	return n, nil
}
