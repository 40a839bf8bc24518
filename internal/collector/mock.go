package collector

import (
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// BarsBySymbol takes precedence over Err; symbols absent from the map get
// an empty result.
type MockFetcher struct {
	BarsBySymbol map[string][]model.PriceBar
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, _, _ time.Time) ([]model.PriceBar, error) {
	if bars, ok := m.BarsBySymbol[symbol]; ok {
		return bars, nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, nil
}

// GenerateBars builds a synthetic date-ascending daily series around a base
// price, for development runs and tests.
func GenerateBars(basePrice float64, count int, start time.Time) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
