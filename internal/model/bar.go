package model

import (
	"math"
	"time"
)

// DateLayout is the canonical on-disk date format (dd-mm-yyyy).
const DateLayout = "02-01-2006"

// PriceBar represents one symbol's OHLCV data for a single trading day.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IndicatorColumn is a named series of derived values aligned 1:1 with the
// bars of a ProcessedSeries. NaN marks cells inside the warm-up window.
type IndicatorColumn struct {
	Name   string
	Values []float64
}

// ProcessedSeries holds a cleaned, date-ascending price history together with
// its computed indicator columns. FetchedAt is run metadata and is never
// written to artifacts.
type ProcessedSeries struct {
	Symbol    string
	Bars      []PriceBar
	Columns   []IndicatorColumn
	FetchedAt time.Time
}

// Column returns the indicator column with the given name, or nil.
func (s *ProcessedSeries) Column(name string) *IndicatorColumn {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// Closes extracts the close prices of the series in bar order.
func (s *ProcessedSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Defined reports whether an indicator value is outside its warm-up window.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
