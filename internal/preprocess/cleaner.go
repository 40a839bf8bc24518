package preprocess

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

// Fill methods for missing close values.
const (
	FillDrop    = "drop"
	FillForward = "ffill"
)

// Clean normalizes a raw daily series: dates truncated to UTC midnight,
// sorted ascending, duplicate dates rejected, and bars with missing closes
// dropped or forward-filled per method. Gaps between trading days are left
// as-is.
func Clean(bars []model.PriceBar, method string) ([]model.PriceBar, error) {
	out := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		b.Date = truncateDay(b.Date)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	for i := 1; i < len(out); i++ {
		if out[i].Date.Equal(out[i-1].Date) {
			return nil, fmt.Errorf("duplicate date %s", out[i].Date.Format(model.DateLayout))
		}
	}

	cleaned := out[:0]
	for _, b := range out {
		if missingClose(b) {
			if method == FillForward && len(cleaned) > 0 {
				prev := cleaned[len(cleaned)-1].Close
				b.Close = prev
				if missing(b.Open) {
					b.Open = prev
				}
				if missing(b.High) {
					b.High = prev
				}
				if missing(b.Low) {
					b.Low = prev
				}
				cleaned = append(cleaned, b)
			}
			// drop method, or nothing to fill from yet
			continue
		}
		cleaned = append(cleaned, b)
	}
	return cleaned, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func missingClose(b model.PriceBar) bool {
	return missing(b.Close)
}

func missing(v float64) bool {
	return math.IsNaN(v) || v <= 0
}
