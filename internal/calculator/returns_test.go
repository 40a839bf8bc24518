package calculator

import (
	"math"
	"testing"
)

func TestDailyReturns(t *testing.T) {
	closes := []float64{100, 110, 99}
	out := DailyReturns(closes)
	if !math.IsNaN(out[0]) {
		t.Errorf("index 0: expected undefined, got %v", out[0])
	}
	if math.Abs(out[1]-10) > 1e-12 {
		t.Errorf("index 1: expected +10%%, got %v", out[1])
	}
	if math.Abs(out[2]-(-10)) > 1e-12 {
		t.Errorf("index 2: expected -10%%, got %v", out[2])
	}
}

func TestRollingStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	out, err := RollingStdDev(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Error("expected undefined inside warm-up")
	}
	// Sample stddev of {2,4,4} is sqrt(4/3).
	want := math.Sqrt(4.0 / 3.0)
	if math.Abs(out[2]-want) > 1e-12 {
		t.Errorf("index 2: expected %v, got %v", want, out[2])
	}
}

func TestRollingStdDev_PropagatesUndefined(t *testing.T) {
	values := []float64{math.NaN(), 4, 4, 4}
	out, err := RollingStdDev(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(out[2]) {
		t.Errorf("index 2: window includes an undefined input, expected NaN, got %v", out[2])
	}
	if math.IsNaN(out[3]) {
		t.Error("index 3: fully defined window, expected a value")
	}
}
