package detector

import (
	"math"
	"testing"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

var testRule = Rule{
	Oversold:   30,
	Overbought: 70,
	RSIColumn:  "RSI_14",
	SMAColumn:  "SMA_20",
	FastColumn: "SMA_20",
	SlowColumn: "SMA_50",
}

func makeSeries(symbol string, closes, rsi, sma []float64) *model.ProcessedSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &model.ProcessedSeries{Symbol: symbol}
	for i, c := range closes {
		s.Bars = append(s.Bars, model.PriceBar{Date: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000})
	}
	s.Columns = []model.IndicatorColumn{
		{Name: "RSI_14", Values: rsi},
		{Name: "SMA_20", Values: sma},
	}
	return s
}

func TestScan_BuyOnOversoldCross(t *testing.T) {
	// RSI crosses 28 -> 32 with close at or above SMA: exactly one BUY at the crossing bar.
	closes := []float64{105, 106, 107}
	rsi := []float64{28, 32, 40}
	sma := []float64{100, 100, 100}
	signals, err := Scan(makeSeries("TEST", closes, rsi, sma), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	sig := signals[0]
	if sig.Kind != model.SignalBuy {
		t.Errorf("expected BUY, got %s", sig.Kind)
	}
	if !sig.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected signal at the crossing bar, got %s", sig.Date)
	}
	if sig.RSI != 32 || sig.SMA != 100 || sig.Close != 106 {
		t.Errorf("signal should carry the triggering values, got %+v", sig)
	}
}

func TestScan_NoBuyWhenCloseBelowSMA(t *testing.T) {
	closes := []float64{95, 96, 97}
	rsi := []float64{28, 32, 40}
	sma := []float64{100, 100, 100}
	signals, err := Scan(makeSeries("TEST", closes, rsi, sma), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("expected no signal with close below SMA, got %d", len(signals))
	}
}

func TestScan_SellOnOverboughtCross(t *testing.T) {
	closes := []float64{95, 94, 93}
	rsi := []float64{72, 68, 60}
	sma := []float64{100, 100, 100}
	signals, err := Scan(makeSeries("TEST", closes, rsi, sma), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Kind != model.SignalSell {
		t.Errorf("expected SELL, got %s", signals[0].Kind)
	}
}

func TestScan_NoSignalInsideWarmup(t *testing.T) {
	nan := math.NaN()
	closes := []float64{105, 106, 107}
	rsi := []float64{nan, 35, 40}   // previous bar undefined at index 1
	sma := []float64{nan, nan, 100} // undefined until index 2
	signals, err := Scan(makeSeries("TEST", closes, rsi, sma), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("expected no signal with undefined indicators, got %d", len(signals))
	}
}

func TestScan_OrderSensitive(t *testing.T) {
	closes := []float64{105, 106, 107, 108}
	rsi := []float64{25, 28, 35, 40}
	sma := []float64{100, 100, 100, 100}
	forward, err := Scan(makeSeries("TEST", closes, rsi, sma), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forward) != 1 {
		t.Fatalf("chronological order: expected 1 signal, got %d", len(forward))
	}

	rev := func(v []float64) []float64 {
		out := make([]float64, len(v))
		for i := range v {
			out[i] = v[len(v)-1-i]
		}
		return out
	}
	backward, err := Scan(makeSeries("TEST", rev(closes), rev(rsi), rev(sma)), testRule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(backward) == len(forward) {
		t.Error("crossing detection must depend on bar order, reversed input reproduced the same signals")
	}
}

func TestScan_BuyTakesPrecedence(t *testing.T) {
	// The same bar satisfies the RSI buy crossing and a bearish SMA crossover.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &model.ProcessedSeries{Symbol: "TEST"}
	closes := []float64{105, 106}
	for i, c := range closes {
		s.Bars = append(s.Bars, model.PriceBar{Date: base.AddDate(0, 0, i), Close: c})
	}
	s.Columns = []model.IndicatorColumn{
		{Name: "RSI_14", Values: []float64{28, 32}},
		{Name: "SMA_20", Values: []float64{101, 100}},
		{Name: "SMA_50", Values: []float64{100, 102}},
	}
	rule := testRule
	rule.Crossovers = true

	signals, err := Scan(s, rule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected exactly one signal per bar, got %d", len(signals))
	}
	if signals[0].Kind != model.SignalBuy {
		t.Errorf("BUY must take precedence, got %s (%s)", signals[0].Kind, signals[0].Reason)
	}
}

func TestScan_BullishCrossover(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &model.ProcessedSeries{Symbol: "TEST"}
	for i, c := range []float64{100, 101, 102} {
		s.Bars = append(s.Bars, model.PriceBar{Date: base.AddDate(0, 0, i), Close: c})
	}
	s.Columns = []model.IndicatorColumn{
		{Name: "RSI_14", Values: []float64{50, 52, 54}},
		{Name: "SMA_20", Values: []float64{99, 101, 102}},
		{Name: "SMA_50", Values: []float64{100, 100, 100}},
	}
	rule := testRule
	rule.Crossovers = true

	signals, err := Scan(s, rule, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 crossover signal, got %d", len(signals))
	}
	if signals[0].Kind != model.SignalBuy {
		t.Errorf("expected crossover BUY, got %s", signals[0].Kind)
	}
}

func TestScan_LookbackKeepsStateAcrossWindowEdge(t *testing.T) {
	closes := []float64{105, 106}
	rsi := []float64{28, 32}
	sma := []float64{100, 100}
	s := makeSeries("TEST", closes, rsi, sma)

	// Window starts at the crossing bar: the bar before it still seeds the
	// previous-RSI state, so the crossing must be detected.
	since := s.Bars[1].Date
	signals, err := Scan(s, testRule, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected crossing at window edge to be detected, got %d signals", len(signals))
	}

	// Window past the whole series: nothing emitted.
	signals, err = Scan(s, testRule, s.Bars[1].Date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("expected no signals past the lookback window, got %d", len(signals))
	}
}

func TestScan_MissingColumns(t *testing.T) {
	s := makeSeries("TEST", []float64{100}, []float64{50}, []float64{100})
	rule := testRule
	rule.RSIColumn = "RSI_7"
	if _, err := Scan(s, rule, time.Time{}); err == nil {
		t.Error("expected error for missing RSI column")
	}
}
