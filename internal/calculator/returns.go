package calculator

import (
	"errors"
	"math"
)

// DailyReturns computes the day-over-day percentage change of closes.
// The first entry is NaN.
func DailyReturns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 || closes[i-1] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (closes[i] - closes[i-1]) / closes[i-1] * 100
	}
	return out
}

// RollingStdDev computes the trailing sample standard deviation of values
// over the given window. Entries are NaN until a full window of defined
// values is available; NaN inputs propagate through their window.
func RollingStdDev(values []float64, window int) ([]float64, error) {
	if window <= 1 {
		return nil, errors.New("window must be at least 2")
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stdDev(values[i-window+1 : i+1])
	}
	return out, nil
}

func stdDev(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		if math.IsNaN(v) {
			return math.NaN()
		}
		sum += v
	}
	mean := sum / float64(len(window))
	var sq float64
	for _, v := range window {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(window)-1))
}
