package moment

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/chinese"
	"github.com/chrissnell/univtime/pkg/gregorian"
	"github.com/chrissnell/univtime/pkg/hebrew"
	"github.com/chrissnell/univtime/pkg/julian"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustGregorian(t *testing.T, f Fields, p Precision) Moment {
	t.Helper()
	m, err := FromGregorian(f, p)
	if err != nil {
		t.Fatalf("FromGregorian(%+v, %v) returned error: %v", f, p, err)
	}
	return m
}

func TestCarryAndBorrow(t *testing.T) {
	start := mustGregorian(t, YMD(224, 3, 1).At(12, 30, dec("30")), 0)
	delta := Delta{Hours: 63, Minutes: 120, Seconds: dec("122")}

	tests := []struct {
		name     string
		got      Moment
		expected Moment
	}{
		{"add", start.Add(delta), mustGregorian(t, YMD(224, 3, 4).At(5, 32, dec("32")), 0)},
		{"sub", start.Sub(delta), mustGregorian(t, YMD(224, 2, 27).At(19, 28, dec("28")), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.expected) {
				t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
			if tt.got.Precision() != Second {
				t.Errorf("%s precision = %v, expected second", tt.name, tt.got.Precision())
			}
		})
	}

	if got := start.Add(delta).Sub(delta); !got.Equal(start) {
		t.Errorf("add then sub = %v, expected %v", got, start)
	}
	if got := BeginningOfTime().Add(delta); !got.IsBeginningOfTime() {
		t.Errorf("BeginningOfTime().Add = %v, expected the beginning of time", got)
	}
}

func TestSince(t *testing.T) {
	a := mustGregorian(t, YMD(2024, 3, 1).At(0, 0, dec("10")), 0)
	b := mustGregorian(t, YMD(2024, 2, 28).At(23, 59, dec("50")), 0)

	d, err := a.Since(b)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if !d.Days.Equal(decimal.NewFromInt(1)) || d.Hours != 0 || d.Minutes != 0 || !d.Seconds.Equal(dec("20")) {
		t.Errorf("Since = %v, expected 1d 0h 0m 20s", d)
	}
	if got := b.Add(d); !got.Equal(a) {
		t.Errorf("b.Add(a.Since(b)) = %v, expected %v", got, a)
	}

	if _, err := a.Since(BeginningOfTime()); !errors.Is(err, calerr.ErrInvalidDate) {
		t.Errorf("Since(BeginningOfTime()) error = %v, expected ErrInvalidDate", err)
	}
}

func TestOrdering(t *testing.T) {
	geo, err := FromGeological(dec("66"), MillionYears)
	if err != nil {
		t.Fatalf("FromGeological returned error: %v", err)
	}
	ordered := []Moment{
		BeginningOfTime(),
		geo,
		mustGregorian(t, Fields{Year: -500}, 0),
		mustGregorian(t, YMD(1492, 4, 9), 0),
		mustGregorian(t, YMD(1492, 4, 9).At(0, 0, dec("0.000000001")), Nanosecond),
		mustGregorian(t, YMD(1492, 4, 9).At(0, 1, decimal.Zero), 0),
		mustGregorian(t, YMD(1492, 4, 9).At(13, 0, decimal.Zero), 0),
		mustGregorian(t, YMD(2024, 2, 29), 0),
	}

	for i, a := range ordered {
		for j, b := range ordered {
			c := a.Compare(b)
			var expected int
			switch {
			case i < j:
				expected = -1
			case i > j:
				expected = 1
			}
			if c != expected {
				t.Errorf("Compare(%v, %v) = %d, expected %d", a, b, c, expected)
			}
			if a.Before(b) == a.After(b) && !a.Equal(b) {
				t.Errorf("%v and %v are neither ordered nor equal", a, b)
			}
		}
	}
}

func TestEqualIgnoresPrecision(t *testing.T) {
	a := mustGregorian(t, YMD(2000, 1, 1), 0)
	b := mustGregorian(t, YMD(2000, 1, 1).At(0, 0, decimal.Zero), Millisecond)
	if !a.Equal(b) {
		t.Errorf("%v and %v should be equal", a, b)
	}
}

func TestKey(t *testing.T) {
	m := mustGregorian(t, YMD(1492, 4, 9), 0)
	expected := "univRD100000000000544676H00M00S00.000000000000000000UTC:08"
	if got := m.Key(); got != expected {
		t.Errorf("Key() = %q, expected %q", got, expected)
	}

	m = mustGregorian(t, YMD(1970, 1, 1).At(13, 5, dec("7.25")), Millisecond)
	expected = "univRD100000000000719163H13M05S07.250000000000000000UTC:12"
	if got := m.Key(); got != expected {
		t.Errorf("Key() = %q, expected %q", got, expected)
	}

	expected = "univRD000000000000000000H00M00S00.000000000000000000UTC:06"
	if got := BeginningOfTime().Key(); got != expected {
		t.Errorf("BeginningOfTime().Key() = %q, expected %q", got, expected)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	geo, _ := FromGeological(dec("4.5"), BillionYears)
	unix, _ := FromUnix(dec("-1.5"))
	moments := []Moment{
		BeginningOfTime(),
		geo,
		mustGregorian(t, Fields{Year: -9999}, 0),
		unix,
		mustGregorian(t, YMD(2024, 2, 29).At(23, 59, dec("59.123456789012345678")), Attosecond),
		mustGregorian(t, Fields{Year: 2024, Month: 3, Through: Month}, 0),
		mustGregorian(t, YMD(9999, 12, 31).At(23, 59, dec("59")), 0),
	}

	var keys []string
	for _, m := range moments {
		key := m.Key()
		keys = append(keys, key)

		got, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q) returned error: %v", key, err)
		}
		if !got.Equal(m) || got.Precision() != m.Precision() {
			t.Errorf("ParseKey(%q) = %v, expected %v", key, got, m)
		}
		if got.Key() != key {
			t.Errorf("ParseKey(%q).Key() = %q", key, got.Key())
		}
	}

	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys of ordered moments are not sorted: %v", keys)
	}
}

func TestParseKeyPrecision(t *testing.T) {
	tests := []struct {
		rank     string
		expected Precision
	}{
		{"00", BillionYears},
		{"04", ThousandYears},
		{"05", ThousandYears},
		{"06", Year},
		{"11", Second},
		{"17", Attosecond},
		{"99", Attosecond},
	}

	for _, tt := range tests {
		key := "univRD100000000000000001H00M00S00.000000000000000000UTC:" + tt.rank
		m, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q) returned error: %v", key, err)
		}
		if m.Precision() != tt.expected {
			t.Errorf("ParseKey rank %s precision = %v, expected %v", tt.rank, m.Precision(), tt.expected)
		}
	}

	bad := []string{
		"",
		"univRD100000000000000001H00M00S00.000000000000000000UTC:6",
		"univRD100000000000000001H24M00S00.000000000000000000UTC:08",
		"univRD100000000000000001H00M60S00.000000000000000000UTC:08",
		"xunivRD100000000000000001H00M00S00.000000000000000000UTC:08",
	}
	for _, key := range bad {
		if _, err := ParseKey(key); !errors.Is(err, calerr.ErrInvalidDate) {
			t.Errorf("ParseKey(%q) error = %v, expected ErrInvalidDate", key, err)
		}
	}
}

func TestPrecisionRule(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		declared Precision
		expected Precision
		wantErr  bool
	}{
		{"year default", Fields{Year: 2024}, 0, Year, false},
		{"day default", YMD(2024, 5, 6), 0, Day, false},
		{"day declared", YMD(2024, 5, 6), Day, Day, false},
		{"coarser than day", YMD(2024, 5, 6), Month, 0, true},
		{"finer than day", YMD(2024, 5, 6), Hour, 0, true},
		{"minute refined to second", Fields{Year: 2024, Month: 5, Day: 6, Hour: 1, Minute: 2, Through: Minute}, Second, 0, true},
		{"second refined", YMD(2024, 5, 6).At(1, 2, decimal.Zero), Femtosecond, Femtosecond, false},
		{"second coarsened", YMD(2024, 5, 6).At(1, 2, decimal.Zero), Minute, 0, true},
		{"unknown precision", YMD(2024, 5, 6), Precision(4), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromGregorian(tt.fields, tt.declared)
			if tt.wantErr {
				if !errors.Is(err, calerr.ErrInvalidPrecision) {
					t.Errorf("error = %v, expected ErrInvalidPrecision", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Precision() != tt.expected {
				t.Errorf("precision = %v, expected %v", m.Precision(), tt.expected)
			}
		})
	}
}

func TestSecondsTruncated(t *testing.T) {
	tests := []struct {
		p        Precision
		expected string
	}{
		{Second, "3"},
		{Millisecond, "3.456"},
		{Microsecond, "3.456789"},
	}

	for _, tt := range tests {
		m := mustGregorian(t, YMD(2000, 1, 1).At(1, 2, dec("3.4567891")), tt.p)
		_, _, s := m.Clock()
		if !s.Equal(dec(tt.expected)) {
			t.Errorf("second at %v = %v, expected %s", tt.p, s, tt.expected)
		}
	}
}

func TestNew(t *testing.T) {
	m, err := New(dec("10.75"), 0, 0, decimal.Zero, Minute)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if h, min, _ := m.Clock(); !m.Day().Equal(decimal.NewFromInt(10)) || h != 18 || min != 0 {
		t.Errorf("New(10.75) = %v, expected RD 10 18:00", m)
	}

	m, err = New(dec("-0.25"), 0, 0, decimal.Zero, Hour)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if h, _, _ := m.Clock(); !m.Day().Equal(decimal.NewFromInt(-1)) || h != 18 {
		t.Errorf("New(-0.25) = %v, expected RD -1 18:00", m)
	}

	invalid := []struct {
		name   string
		day    decimal.Decimal
		hour   int
		minute int
		second decimal.Decimal
		p      Precision
		kind   error
	}{
		{"hour 24", decimal.Zero, 24, 0, decimal.Zero, Hour, calerr.ErrInvalidDate},
		{"minute 60", decimal.Zero, 0, 60, decimal.Zero, Hour, calerr.ErrInvalidDate},
		{"second 60", decimal.Zero, 0, 0, dec("60"), Hour, calerr.ErrInvalidDate},
		{"negative second", decimal.Zero, 0, 0, dec("-1"), Hour, calerr.ErrInvalidDate},
		{"huge day", dec("1e17"), 0, 0, decimal.Zero, Day, calerr.ErrInvalidDate},
		{"bad precision", decimal.Zero, 0, 0, decimal.Zero, Precision(0), calerr.ErrInvalidPrecision},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.day, tt.hour, tt.minute, tt.second, tt.p); !errors.Is(err, tt.kind) {
				t.Errorf("error = %v, expected %v", err, tt.kind)
			}
		})
	}
}

func TestCalendarConstructors(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (Moment, error)
		expected int64
	}{
		{"gregorian", func() (Moment, error) { return FromGregorian(YMD(1492, 4, 9), 0) }, 544676},
		{"julian", func() (Moment, error) { return FromJulian(YMD(1731, 2, 11), 0) }, gregorian.ToFixed(1731, 2, 22)},
		{"hebrew year", func() (Moment, error) { return FromHebrew(Fields{Year: 5785}, 0) }, gregorian.ToFixed(2024, 10, 3)},
		{"chinese", func() (Moment, error) {
			return FromChinese(Fields{Cycle: 78, Year: 41, Month: 1, Day: 1, Through: Day}, 0)
		}, gregorian.ToFixed(2024, 2, 10)},
		{"chinese leap", func() (Moment, error) {
			return FromChinese(Fields{Cycle: 78, Year: 40, Month: 2, Leap: true, Day: 1, Through: Day}, 0)
		}, gregorian.ToFixed(2023, 3, 22)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rd, _ := m.Fixed(); rd != tt.expected {
				t.Errorf("fixed day = %d, expected %d", rd, tt.expected)
			}
		})
	}

	invalid := []struct {
		name  string
		build func() (Moment, error)
	}{
		{"gregorian february 29", func() (Moment, error) { return FromGregorian(YMD(2023, 2, 29), 0) }},
		{"julian year zero", func() (Moment, error) { return FromJulian(YMD(0, 1, 1), 0) }},
		{"hebrew adar II in common year", func() (Moment, error) { return FromHebrew(YMD(5785, 13, 1), 0) }},
		{"chinese missing leap month", func() (Moment, error) {
			return FromChinese(Fields{Cycle: 78, Year: 41, Month: 4, Leap: true, Day: 1, Through: Day}, 0)
		}},
		{"hour 25", func() (Moment, error) { return FromGregorian(YMD(2023, 1, 1).At(25, 0, decimal.Zero), 0) }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.build(); !errors.Is(err, calerr.ErrInvalidDate) {
				t.Errorf("error = %v, expected ErrInvalidDate", err)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	old := JulianDate{julian.Date{Year: 1731, Month: 2, Day: 11}}
	got, err := Convert(old, Gregorian)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != (GregorianDate{gregorian.Date{Year: 1731, Month: 2, Day: 22}}) {
		t.Errorf("Convert(%v, gregorian) = %v, expected 1731-02-22", old, got)
	}

	dates := []Date{
		JulianDate{julian.Date{Year: -587, Month: 7, Day: 24}},
		HebrewDate{hebrew.Date{Year: 5784, Month: hebrew.AdarII, Day: 14}},
		ChineseDate{chinese.Date{Cycle: 78, Year: 37, Month: 4, Leap: true, Day: 10}},
		GregorianDate{gregorian.Date{Year: 1900, Month: 3, Day: 1}},
	}
	for _, d := range dates {
		for _, cal := range []Calendar{Gregorian, Julian, Hebrew, Chinese} {
			if d.Calendar() == Chinese && cal == Chinese {
				continue
			}
			there, err := Convert(d, cal)
			if err != nil {
				t.Fatalf("Convert(%v, %v) returned error: %v", d, cal, err)
			}
			back, err := Convert(there, d.Calendar())
			if err != nil {
				t.Fatalf("Convert(%v, %v) returned error: %v", there, d.Calendar(), err)
			}
			if back != d {
				t.Errorf("%v -> %v -> %v, expected %v", d, there, back, d)
			}
		}
	}

	if _, err := Convert(old, Calendar(42)); !errors.Is(err, calerr.ErrUnsupportedConversion) {
		t.Errorf("Convert to unknown calendar error = %v, expected ErrUnsupportedConversion", err)
	}
	if _, err := ParseCalendar("mayan"); !errors.Is(err, calerr.ErrUnsupportedConversion) {
		t.Errorf("ParseCalendar(mayan) error = %v, expected ErrUnsupportedConversion", err)
	}
}

func TestViews(t *testing.T) {
	m := mustGregorian(t, Fields{Year: 2024, Month: 3, Through: Month}, 0)
	v, err := m.In(Gregorian)
	if err != nil {
		t.Fatalf("In returned error: %v", err)
	}
	if y, ok := v.Year(); !ok || y != 2024 {
		t.Errorf("Year() = %d, %v, expected 2024, true", y, ok)
	}
	if mo, ok := v.Month(); !ok || mo != 3 {
		t.Errorf("Month() = %d, %v, expected 3, true", mo, ok)
	}
	if _, ok := v.DayOfMonth(); ok {
		t.Errorf("DayOfMonth() present at month precision")
	}
	if _, ok := v.Hour(); ok {
		t.Errorf("Hour() present at month precision")
	}
	if got := v.String(); got != "2024-03" {
		t.Errorf("String() = %q, expected %q", got, "2024-03")
	}

	m = mustGregorian(t, YMD(2023, 3, 22).At(6, 30, dec("1.5")), Millisecond)
	v, err = m.In(Chinese)
	if err != nil {
		t.Fatalf("In(Chinese) returned error: %v", err)
	}
	if c, ok := v.Cycle(); !ok || c != 78 {
		t.Errorf("Cycle() = %d, %v, expected 78, true", c, ok)
	}
	if leap, ok := v.Leap(); !ok || !leap {
		t.Errorf("Leap() = %v, %v, expected true, true", leap, ok)
	}
	if s, ok := v.Second(); !ok || !s.Equal(dec("1.5")) {
		t.Errorf("Second() = %v, %v, expected 1.5, true", s, ok)
	}

	if _, err := BeginningOfTime().In(Gregorian); !errors.Is(err, calerr.ErrUnsupportedConversion) {
		t.Errorf("BeginningOfTime().In error = %v, expected ErrUnsupportedConversion", err)
	}
}

func TestGeological(t *testing.T) {
	m, err := FromGeological(dec("66"), MillionYears)
	if err != nil {
		t.Fatalf("FromGeological returned error: %v", err)
	}
	v, err := m.In(Geological)
	if err != nil {
		t.Fatalf("In(Geological) returned error: %v", err)
	}
	g := v.Date().(GeologicalDate)
	if !g.YearsAgo.Equal(decimal.NewFromInt(66_000_000)) {
		t.Errorf("YearsAgo = %v, expected 66000000", g.YearsAgo)
	}
	if p := g.Placement(); p.Era != "Cenozoic" || p.Period != "Paleogene" {
		t.Errorf("Placement() = %+v, expected Cenozoic Paleogene", p)
	}
	if _, ok := v.Year(); ok {
		t.Errorf("geological view reports a calendar year")
	}
	if _, err := m.In(Gregorian); !errors.Is(err, calerr.ErrInvalidDate) {
		t.Errorf("In(Gregorian) error = %v, expected ErrInvalidDate", err)
	}

	if _, err := FromGeological(dec("1"), Day); !errors.Is(err, calerr.ErrInvalidPrecision) {
		t.Errorf("FromGeological at day precision error = %v, expected ErrInvalidPrecision", err)
	}
}

func TestFromUnix(t *testing.T) {
	tests := []struct {
		seconds  string
		expected Moment
	}{
		{"0", mustGregorian(t, YMD(1970, 1, 1).At(0, 0, decimal.Zero), Nanosecond)},
		{"86401.5", mustGregorian(t, YMD(1970, 1, 2).At(0, 0, dec("1.5")), Nanosecond)},
		{"-1", mustGregorian(t, YMD(1969, 12, 31).At(23, 59, dec("59")), Nanosecond)},
		{"1700000000", mustGregorian(t, YMD(2023, 11, 14).At(22, 13, dec("20")), Nanosecond)},
	}

	for _, tt := range tests {
		got, err := FromUnix(dec(tt.seconds))
		if err != nil {
			t.Fatalf("FromUnix(%s) returned error: %v", tt.seconds, err)
		}
		if !got.Equal(tt.expected) || got.Precision() != Nanosecond {
			t.Errorf("FromUnix(%s) = %v, expected %v", tt.seconds, got, tt.expected)
		}
	}
}

func TestFromJulianDayNumber(t *testing.T) {
	m, err := FromJulianDayNumber(dec("2451545"))
	if err != nil {
		t.Fatalf("FromJulianDayNumber returned error: %v", err)
	}
	expected := mustGregorian(t, YMD(2000, 1, 1).At(12, 0, decimal.Zero), 0)
	if !m.Equal(expected) || m.Precision() != Hour {
		t.Errorf("FromJulianDayNumber(2451545) = %v, expected %v", m, expected)
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2024, 7, 4, 9, 15, 30, 123456789, time.FixedZone("EDT", -4*3600))
	m := FromTime(tm)
	expected := mustGregorian(t, YMD(2024, 7, 4).At(13, 15, dec("30.123456")), Microsecond)
	if !m.Equal(expected) {
		t.Errorf("FromTime(%v) = %v, expected %v", tm, m, expected)
	}
}

type fixedOffset struct {
	hours, minutes int
	calls          int
}

func (f *fixedOffset) UTCOffset(gregorian.Date, string) (int, int, error) {
	f.calls++
	return f.hours, f.minutes, nil
}

func TestInZone(t *testing.T) {
	lookup := &fixedOffset{hours: 5, minutes: 30}

	m := mustGregorian(t, YMD(2024, 1, 1).At(20, 0, decimal.Zero), 0)
	v, err := m.InZone(lookup, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("InZone returned error: %v", err)
	}
	if got := v.String(); got != "2024-01-02 01:30:00 Asia/Kolkata" {
		t.Errorf("InZone = %q, expected %q", got, "2024-01-02 01:30:00 Asia/Kolkata")
	}

	old := mustGregorian(t, YMD(1846, 12, 31).At(20, 0, decimal.Zero), 0)
	lookup.calls = 0
	v, err = old.InZone(lookup, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("InZone returned error: %v", err)
	}
	if lookup.calls != 0 || v.OffsetHours != 0 || v.OffsetMinutes != 0 {
		t.Errorf("dates before %d should use a zero offset, got %d:%d", StandardTimeYear, v.OffsetHours, v.OffsetMinutes)
	}
}

func TestFromLocal(t *testing.T) {
	tests := []struct {
		name     string
		local    Moment
		lookup   *fixedOffset
		expected Moment
		calls    int
	}{
		{
			name:     "east of greenwich crosses midnight",
			local:    mustGregorian(t, YMD(2024, 1, 2).At(1, 30, decimal.Zero), 0),
			lookup:   &fixedOffset{hours: 5, minutes: 30},
			expected: mustGregorian(t, YMD(2024, 1, 1).At(20, 0, decimal.Zero), 0),
			calls:    1,
		},
		{
			name:     "west of greenwich",
			local:    mustGregorian(t, YMD(2024, 7, 4).At(21, 15, dec("30.5")), Millisecond),
			lookup:   &fixedOffset{hours: -4},
			expected: mustGregorian(t, YMD(2024, 7, 5).At(1, 15, dec("30.5")), Millisecond),
			calls:    1,
		},
		{
			name:     "before standard time",
			local:    mustGregorian(t, YMD(1846, 12, 31).At(20, 0, decimal.Zero), 0),
			lookup:   &fixedOffset{hours: 5, minutes: 30},
			expected: mustGregorian(t, YMD(1846, 12, 31).At(20, 0, decimal.Zero), 0),
			calls:    0,
		},
		{
			name:     "hour precision keeps its rank",
			local:    mustGregorian(t, Fields{Year: 2000, Month: 6, Day: 1, Hour: 3, Through: Hour}, 0),
			lookup:   &fixedOffset{hours: 2},
			expected: mustGregorian(t, Fields{Year: 2000, Month: 6, Day: 1, Hour: 1, Through: Hour}, 0),
			calls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromLocal(tt.local, tt.lookup, "Test/Zone")
			if err != nil {
				t.Fatalf("FromLocal returned error: %v", err)
			}
			if !got.Equal(tt.expected) || got.Precision() != tt.expected.Precision() {
				t.Errorf("FromLocal(%v) = %v, expected %v", tt.local, got, tt.expected)
			}
			if tt.lookup.calls != tt.calls {
				t.Errorf("UTCOffset called %d times, expected %d", tt.lookup.calls, tt.calls)
			}
		})
	}

	day := mustGregorian(t, YMD(2024, 1, 1), 0)
	if _, err := FromLocal(day, &fixedOffset{}, "Test/Zone"); !errors.Is(err, calerr.ErrInvalidPrecision) {
		t.Errorf("FromLocal at day precision error = %v, expected ErrInvalidPrecision", err)
	}
	if _, err := FromLocal(BeginningOfTime(), &fixedOffset{}, "Test/Zone"); !errors.Is(err, calerr.ErrUnsupportedConversion) {
		t.Errorf("FromLocal(BeginningOfTime) error = %v, expected ErrUnsupportedConversion", err)
	}
}

func TestFromLocalInvertsInZone(t *testing.T) {
	lookup := &fixedOffset{hours: -9, minutes: -30}
	utc := mustGregorian(t, YMD(1999, 12, 31).At(23, 59, dec("59")), 0)
	v, err := utc.InZone(lookup, "Pacific/Marquesas")
	if err != nil {
		t.Fatalf("InZone returned error: %v", err)
	}
	y, _ := v.Year()
	mo, _ := v.Month()
	d, _ := v.DayOfMonth()
	h, _ := v.Hour()
	mi, _ := v.Minute()
	s, _ := v.Second()
	local := mustGregorian(t, YMD(y, mo, d).At(h, mi, s), 0)
	if y != 1999 || h != 14 || mi != 29 {
		t.Errorf("InZone(%v) = %v, expected 1999-12-31 14:29:59", utc, v)
	}
	back, err := FromLocal(local, lookup, "Pacific/Marquesas")
	if err != nil {
		t.Fatalf("FromLocal returned error: %v", err)
	}
	if !back.Equal(utc) {
		t.Errorf("FromLocal(InZone(%v)) = %v", utc, back)
	}
}

func TestTZDatabase(t *testing.T) {
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skip("time zone database not available")
	}
	h, m, err := TZDatabase{}.UTCOffset(gregorian.Date{Year: 2024, Month: 7, Day: 4}, "America/New_York")
	if err != nil {
		t.Fatalf("UTCOffset returned error: %v", err)
	}
	if h != -4 || m != 0 {
		t.Errorf("UTCOffset(2024-07-04, America/New_York) = %d:%02d, expected -4:00", h, m)
	}
	if _, _, err := (TZDatabase{}).UTCOffset(gregorian.Date{Year: 2024, Month: 1, Day: 1}, "Nowhere/Atlantis"); !errors.Is(err, calerr.ErrUnsupportedConversion) {
		t.Errorf("unknown zone error = %v, expected ErrUnsupportedConversion", err)
	}
}

func TestJSON(t *testing.T) {
	type record struct {
		At Moment `json:"at"`
	}
	in := record{At: mustGregorian(t, YMD(1969, 7, 20).At(20, 17, dec("40")), 0)}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var out record
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !out.At.Equal(in.At) || out.At.Precision() != in.At.Precision() {
		t.Errorf("JSON round trip = %v, expected %v", out.At, in.At)
	}
	if err := json.Unmarshal([]byte(`{"at":"not a key"}`), &out); err == nil {
		t.Errorf("Unmarshal accepted a malformed key")
	}
}

func TestPrecisionNames(t *testing.T) {
	for _, p := range Precisions() {
		got, err := ParsePrecision(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePrecision(%q) = %v, %v, expected %v", p.String(), got, err, p)
		}
		got, err = ParsePrecision(p.Abbrev())
		if err != nil || got != p {
			t.Errorf("ParsePrecision(%q) = %v, %v, expected %v", p.Abbrev(), got, err, p)
		}
	}
	if _, ok := Month.Power(); ok {
		t.Errorf("Month.Power() reported a power")
	}
	if pw, ok := MillionYears.Power(); !ok || pw != 6 {
		t.Errorf("MillionYears.Power() = %d, %v, expected 6, true", pw, ok)
	}
}

func TestCalendarRanges(t *testing.T) {
	greg := func(y, m, d int) Date { return GregorianDate{gregorian.Date{Year: y, Month: m, Day: d}} }

	outside := []struct {
		from Date
		to   Calendar
	}{
		{greg(-5000, 1, 1), Hebrew},
		{greg(-5000, 1, 1), Chinese},
		{greg(9999, 1, 1), Hebrew},
		{greg(-9999, 1, 1), Julian},
		{HebrewDate{hebrew.Date{Year: 1, Month: hebrew.Tishri, Day: 1}}, Chinese},
	}
	for _, tt := range outside {
		if got, err := Convert(tt.from, tt.to); !errors.Is(err, calerr.ErrInvalidDate) {
			t.Errorf("Convert(%v, %v) = %v, %v; expected ErrInvalidDate", tt.from, tt.to, got, err)
		}
	}

	inside := []struct {
		from Date
		to   Calendar
	}{
		{greg(-3760, 12, 1), Hebrew},
		{greg(9999, 1, 1), Chinese},
		{greg(9999, 12, 31), Julian},
		{greg(-2600, 6, 1), Chinese},
		{HebrewDate{hebrew.Date{Year: hebrew.MaxYear, Month: hebrew.Elul, Day: 29}}, Gregorian},
	}
	for _, tt := range inside {
		there, err := Convert(tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert(%v, %v) returned error: %v", tt.from, tt.to, err)
		}
		text := there.String()
		if h, ok := there.(HebrewDate); ok {
			text = fmt.Sprintf("%d-%d-%d", h.Year, h.Month, h.Day)
		}
		back, err := ParseDate(tt.to, text)
		if err != nil {
			t.Errorf("%v does not parse back: %v", there, err)
			continue
		}
		if rd, want := mustFixed(t, back), mustFixed(t, tt.from); rd != want {
			t.Errorf("%v -> %v -> day %d, expected day %d", tt.from, there, rd, want)
		}
	}
}

func mustFixed(t *testing.T, d Date) int64 {
	t.Helper()
	rd, err := Fixed(d)
	if err != nil {
		t.Fatalf("Fixed(%v): %v", d, err)
	}
	return rd
}
