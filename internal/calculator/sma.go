package calculator

import (
	"errors"
	"math"
)

// SMASeries computes the trailing simple moving average of closes over the
// given window. The result is aligned 1:1 with the input; entries before
// index window-1 are NaN.
func SMASeries(closes []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
