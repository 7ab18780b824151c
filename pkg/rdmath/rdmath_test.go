package rdmath

import (
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/univtime/pkg/calerr"
)

func TestFloorDivAndMod(t *testing.T) {
	tests := []struct {
		a, b     int64
		div      int64
		mod      int64
		adjusted int64
	}{
		{7, 3, 2, 1, 1},
		{-7, 3, -3, 2, 2},
		{6, 3, 2, 0, 3},
		{-6, 3, -2, 0, 3},
		{0, 12, 0, 0, 12},
		{-214238, 12, -17854, 10, 10},
	}

	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("FloorDiv(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.div)
		}
		if got := Mod(tt.a, tt.b); got != tt.mod {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.mod)
		}
		if got := AMod(tt.a, tt.b); got != tt.adjusted {
			t.Errorf("AMod(%d, %d) = %d, expected %d", tt.a, tt.b, got, tt.adjusted)
		}
	}
}

func TestModRange(t *testing.T) {
	tests := []struct {
		x, a, b, expected float64
	}{
		{190, -180, 180, -170},
		{-190, -180, 180, 170},
		{45, -180, 180, 45},
		{725, 0, 360, 5},
	}

	for _, tt := range tests {
		if got := ModRange(tt.x, tt.a, tt.b); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("ModRange(%v, %v, %v) = %v, expected %v", tt.x, tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestPoly(t *testing.T) {
	if got := Poly(2, []float64{1, 2, 3}); got != 17 {
		t.Errorf("Poly = %v, expected 17", got)
	}
	if got := Poly(5, nil); got != 0 {
		t.Errorf("Poly(nil) = %v, expected 0", got)
	}
}

func TestRound(t *testing.T) {
	for x, expected := range map[float64]float64{2.5: 3, -2.5: -2, 2.49: 2, -0.4: 0} {
		if got := Round(x); got != expected {
			t.Errorf("Round(%v) = %v, expected %v", x, got, expected)
		}
	}
}

func TestMinMaxInt(t *testing.T) {
	atLeast := func(n int64) func(int64) bool { return func(k int64) bool { return k >= n } }
	atMost := func(n int64) func(int64) bool { return func(k int64) bool { return k <= n } }

	tests := []struct {
		name  string
		start int64
		n     int64
	}{
		{"start below", -5, 10},
		{"start above", 25, 10},
		{"start exact", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := MinInt(tt.start, atLeast(tt.n)); err != nil || got != tt.n {
				t.Errorf("MinInt = %d, %v, expected %d", got, err, tt.n)
			}
			if got, err := MaxInt(tt.start, atMost(tt.n)); err != nil || got != tt.n {
				t.Errorf("MaxInt = %d, %v, expected %d", got, err, tt.n)
			}
		})
	}
}

func TestSearchCap(t *testing.T) {
	never := func(int64) bool { return false }
	if _, err := MinInt(0, never); !errors.Is(err, calerr.ErrSearchDidNotConverge) {
		t.Errorf("MinInt error = %v, expected ErrSearchDidNotConverge", err)
	}
	if _, err := MaxInt(0, never); !errors.Is(err, calerr.ErrSearchDidNotConverge) {
		t.Errorf("MaxInt error = %v, expected ErrSearchDidNotConverge", err)
	}

	nan := math.NaN()
	if _, err := Bisect(nan, nan, func(float64) bool { return false }, 1e-5); !errors.Is(err, calerr.ErrSearchDidNotConverge) {
		t.Errorf("Bisect error = %v, expected ErrSearchDidNotConverge", err)
	}
}

func TestBisect(t *testing.T) {
	got, err := Bisect(0, 10, func(x float64) bool { return x*x >= 2 }, 1e-9)
	if err != nil {
		t.Fatalf("Bisect: %v", err)
	}
	if math.Abs(got-math.Sqrt2) > 1e-8 {
		t.Errorf("Bisect = %v, expected %v", got, math.Sqrt2)
	}
}
