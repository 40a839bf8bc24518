package calculator

import (
	"math"
	"testing"
)

func TestSMASeries_WarmupUndefined(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}
	out, err := SMASeries(closes, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(closes) {
		t.Fatalf("expected aligned output, got %d values for %d closes", len(out), len(closes))
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("index %d: expected undefined inside warm-up, got %v", i, out[i])
		}
	}
	if got := out[3]; got != 2.5 {
		t.Errorf("index 3: expected 2.5, got %v", got)
	}
	if got := out[5]; got != 4.5 {
		t.Errorf("index 5: expected 4.5, got %v", got)
	}
}

func TestSMASeries_EqualsMeanOfTrailingWindow(t *testing.T) {
	closes := []float64{10.5, 11.25, 9.75, 12, 13.5, 12.25, 11, 10}
	window := 3
	out, err := SMASeries(closes, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		want := sum / float64(window)
		if math.Abs(out[i]-want) > 1e-12 {
			t.Errorf("index %d: expected %v, got %v", i, want, out[i])
		}
	}
}

func TestSMASeries_ShorterThanWindow(t *testing.T) {
	out, err := SMASeries([]float64{1, 2, 3}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("index %d: expected undefined for short series, got %v", i, v)
		}
	}
}

func TestSMASeries_InvalidWindow(t *testing.T) {
	if _, err := SMASeries([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for window 0")
	}
	if _, err := SMASeries([]float64{1, 2}, -5); err == nil {
		t.Error("expected error for negative window")
	}
}
