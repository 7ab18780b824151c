package julian

import (
	"errors"
	"testing"

	"github.com/chrissnell/univtime/pkg/calerr"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/gregorian"
)

var sampleDates = []struct {
	rd   int64
	date Date
}{
	{-214193, Date{-587, 7, 30}},
	{-61387, Date{-169, 12, 8}},
	{25469, Date{70, 9, 26}},
	{171307, Date{470, 1, 7}},
	{369740, Date{1013, 4, 19}},
	{452605, Date{1240, 3, 3}},
	{544676, Date{1492, 3, 31}},
	{601716, Date{1648, 5, 31}},
	{727274, Date{1992, 3, 4}},
	{744313, Date{2038, 10, 28}},
	{764652, Date{2094, 7, 5}},
}

func TestFixedAndBack(t *testing.T) {
	for _, tt := range sampleDates {
		t.Run(tt.date.String(), func(t *testing.T) {
			if got := tt.date.Fixed(); got != tt.rd {
				t.Errorf("Fixed() = %d, expected %d", got, tt.rd)
			}
			if got := FromFixed(tt.rd); got != tt.date {
				t.Errorf("FromFixed(%d) = %v, expected %v", tt.rd, got, tt.date)
			}
		})
	}
}

func TestEpochs(t *testing.T) {
	if got := ToFixed(1, 1, 1); got != epoch.Julian {
		t.Errorf("ToFixed(1, 1, 1) = %d, expected %d", got, epoch.Julian)
	}
	if got := ToFixed(-3761, 10, 7); got != epoch.Hebrew {
		t.Errorf("ToFixed(-3761, 10, 7) = %d, expected %d", got, epoch.Hebrew)
	}
}

func TestOldStyleToGregorian(t *testing.T) {
	old := Date{1731, 2, 11}
	got := gregorian.FromFixed(old.Fixed())
	expected := gregorian.Date{Year: 1731, Month: 2, Day: 22}
	if got != expected {
		t.Errorf("gregorian date of %v = %v, expected %v", old, got, expected)
	}
}

func TestRoundTrip(t *testing.T) {
	start := ToFixed(-2000, 1, 1)
	end := ToFixed(3000, 12, 31)
	for rd := start; rd <= end; rd += 3 {
		d := FromFixed(rd)
		if d.Year == 0 {
			t.Fatalf("FromFixed(%d) produced year 0", rd)
		}
		if got := d.Fixed(); got != rd {
			t.Fatalf("Fixed(FromFixed(%d)) = %d (%v)", rd, got, d)
		}
		if back := FromFixed(gregorian.FromFixed(rd).Fixed()); back != d {
			t.Fatalf("julian -> gregorian -> julian changed %v to %v", d, back)
		}
	}
}

func TestYearBoundaryAroundZero(t *testing.T) {
	lastBCE := Date{-1, 12, 31}
	firstCE := Date{1, 1, 1}
	if firstCE.Fixed()-lastBCE.Fixed() != 1 {
		t.Errorf("1 C.E. should follow 1 B.C.E. directly: %d, %d", lastBCE.Fixed(), firstCE.Fixed())
	}
	if !IsLeapYear(BCE(1)) {
		t.Error("1 B.C.E. should be a leap year")
	}
	if IsLeapYear(CE(1)) {
		t.Error("1 C.E. should not be a leap year")
	}
}

func TestNewRejectsInvalidDates(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
	}{
		{"year zero", 0, 1, 1},
		{"month thirteen", 100, 13, 1},
		{"february 29 common year", 1999, 2, 29},
		{"september 31", 1400, 9, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.year, tt.month, tt.day); !errors.Is(err, calerr.ErrInvalidDate) {
				t.Errorf("New(%d, %d, %d) error = %v, expected ErrInvalidDate", tt.year, tt.month, tt.day, err)
			}
		})
	}

	// 1900 is a leap year in the Julian calendar.
	if _, err := New(1900, 2, 29); err != nil {
		t.Errorf("New(1900, 2, 29) error = %v", err)
	}
}
