package epoch

import (
	"math"
	"testing"
)

func TestPublishedEpochs(t *testing.T) {
	tests := []struct {
		name     string
		expected float64
	}{
		{"gregorian", 1},
		{"julian", -1},
		{"hebrew", -1373427},
		{"chinese", -963099},
		{"unix", 719163},
		{"iso-8601", 1},
		{"julian-day-number", -1721424.5},
		{"modified-julian-day", 678576},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if got != tt.expected {
				t.Errorf("Lookup(%q) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}

	if _, ok := Lookup("klingon"); ok {
		t.Error("Lookup(klingon) should not be found")
	}
	if len(Names()) != 23 {
		t.Errorf("len(Names()) = %d, expected 23", len(Names()))
	}
}

// Values from the sample data table of Calendrical Calculations.
func TestContinuousCounts(t *testing.T) {
	tests := []struct {
		rd      int64
		weekday string
		jd      float64
		mjd     float64
	}{
		{-214193, "Sunday", 1507231.5, -892769},
		{544676, "Saturday", 2266100.5, -133900},
		{727274, "Tuesday", 2448698.5, 48698},
		{764652, "Sunday", 2486076.5, 86076},
	}

	for _, tt := range tests {
		if got := DayName(tt.rd); got != tt.weekday {
			t.Errorf("DayName(%d) = %s, expected %s", tt.rd, got, tt.weekday)
		}
		if got := JDFromFixed(float64(tt.rd)); got != tt.jd {
			t.Errorf("JDFromFixed(%d) = %v, expected %v", tt.rd, got, tt.jd)
		}
		if got := FixedFromJD(tt.jd); got != float64(tt.rd) {
			t.Errorf("FixedFromJD(%v) = %v, expected %d", tt.jd, got, tt.rd)
		}
		if got := MJDFromFixed(float64(tt.rd)); got != tt.mjd {
			t.Errorf("MJDFromFixed(%d) = %v, expected %v", tt.rd, got, tt.mjd)
		}
	}
}

func TestUnix(t *testing.T) {
	if got := FixedFromUnix(0); got != Unix {
		t.Errorf("FixedFromUnix(0) = %v, expected %v", got, Unix)
	}
	if got := UnixFromFixed(Unix + 1.5); math.Abs(got-129600) > 1e-6 {
		t.Errorf("UnixFromFixed = %v, expected 129600", got)
	}
}
