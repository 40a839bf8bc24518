package collector

import (
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	// FetchDailyBars returns the daily bars for symbol within [start, end],
	// date-ascending. An empty result is not an error at this layer.
	FetchDailyBars(symbol string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
