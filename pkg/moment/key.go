package moment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/shopspring/decimal"
)

// keyOffset keeps the day field of a key non-negative and fixed width.
const keyOffset = 100_000_000_000_000_000

var keyPattern = regexp.MustCompile(`^univRD(\d{18})H(\d{2})M(\d{2})S(\d{2}\.\d{18})UTC:(\d{2})$`)

// Key returns the lexical key of m. Keys of Moments at the same precision
// sort in the same order as the Moments; BeginningOfTime encodes day 0.
func (m Moment) Key() string {
	var day int64
	if !m.origin {
		day = m.day.IntPart() + keyOffset
	}
	second := m.second.StringFixed(18)
	if pad := 21 - len(second); pad > 0 {
		second = strings.Repeat("0", pad) + second
	}
	return fmt.Sprintf("univRD%018dH%02dM%02dS%sUTC:%02d", day, m.hour, m.minute, second, m.precision.Rank())
}

// ParseKey rebuilds the Moment a key encodes. An unknown precision rank
// selects the finest level at or coarser than it.
func ParseKey(key string) (Moment, error) {
	match := keyPattern.FindStringSubmatch(key)
	if match == nil {
		return Moment{}, calerr.InvalidDate("malformed moment key %q", key)
	}
	day, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Moment{}, calerr.InvalidDate("moment key day %q: %v", match[1], err)
	}
	hour, _ := strconv.Atoi(match[2])
	minute, _ := strconv.Atoi(match[3])
	second, err := decimal.NewFromString(match[4])
	if err != nil {
		return Moment{}, calerr.InvalidDate("moment key second %q: %v", match[4], err)
	}
	rank, _ := strconv.Atoi(match[5])

	if day <= 0 {
		return BeginningOfTime(), nil
	}
	return New(decimal.NewFromInt(day-keyOffset), hour, minute, second, atOrCoarser(rank))
}

// MarshalJSON encodes m as its key.
func (m Moment) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.Key())), nil
}

// UnmarshalJSON decodes a key produced by MarshalJSON.
func (m *Moment) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return calerr.InvalidDate("moment must be a quoted key: %v", err)
	}
	parsed, err := ParseKey(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
