// Package detector implements the second pipeline stage: scan processed
// series chronologically and emit buy/sell signals on indicator crossings.
package detector

import (
	"fmt"
	"math"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

// Rule holds the thresholds and column bindings for signal detection.
type Rule struct {
	Oversold   float64
	Overbought float64
	RSIColumn  string
	SMAColumn  string
	Crossovers bool
	FastColumn string
	SlowColumn string
}

// RuleFromConfig binds the configured thresholds and windows to column names.
func RuleFromConfig(cfg *config.Config) Rule {
	return Rule{
		Oversold:   cfg.Signals.Oversold,
		Overbought: cfg.Signals.Overbought,
		RSIColumn:  fmt.Sprintf("RSI_%d", cfg.Indicators.RSIPeriod),
		SMAColumn:  fmt.Sprintf("SMA_%d", cfg.Signals.SMAWindow),
		Crossovers: cfg.CrossoversEnabled(),
		FastColumn: fmt.Sprintf("SMA_%d", cfg.Signals.FastSMA),
		SlowColumn: fmt.Sprintf("SMA_%d", cfg.Signals.SlowSMA),
	}
}

// scanState carries the previous bar's indicator values through the scan.
type scanState struct {
	rsi  float64
	fast float64
	slow float64
}

// Scan walks the series in date order and returns the detected signals,
// chronological, at most one per bar. Bars before `since` (when non-zero)
// feed the carried state but never emit, so crossings at the window edge are
// still detected. Bars with undefined indicators at the current or previous
// position produce nothing.
//
// Precedence when several conditions match one bar: RSI buy, then RSI sell,
// then crossover buy, then crossover sell.
func Scan(series *model.ProcessedSeries, rule Rule, since time.Time) ([]model.Signal, error) {
	rsiCol := series.Column(rule.RSIColumn)
	smaCol := series.Column(rule.SMAColumn)
	if rsiCol == nil || smaCol == nil {
		return nil, fmt.Errorf("%s: missing required columns %s/%s", series.Symbol, rule.RSIColumn, rule.SMAColumn)
	}
	var fastCol, slowCol *model.IndicatorColumn
	if rule.Crossovers {
		fastCol = series.Column(rule.FastColumn)
		slowCol = series.Column(rule.SlowColumn)
		if fastCol == nil || slowCol == nil {
			return nil, fmt.Errorf("%s: missing crossover columns %s/%s", series.Symbol, rule.FastColumn, rule.SlowColumn)
		}
	}

	var signals []model.Signal
	prev := scanState{rsi: math.NaN(), fast: math.NaN(), slow: math.NaN()}

	for i, bar := range series.Bars {
		cur := scanState{rsi: rsiCol.Values[i], fast: math.NaN(), slow: math.NaN()}
		if rule.Crossovers {
			cur.fast = fastCol.Values[i]
			cur.slow = slowCol.Values[i]
		}
		sma := smaCol.Values[i]

		if since.IsZero() || !bar.Date.Before(since) {
			if sig, ok := evaluate(bar, prev, cur, sma, rule); ok {
				sig.Symbol = series.Symbol
				signals = append(signals, sig)
			}
		}
		prev = cur
	}
	return signals, nil
}

func evaluate(bar model.PriceBar, prev, cur scanState, sma float64, rule Rule) (model.Signal, bool) {
	rsiReady := model.Defined(prev.rsi) && model.Defined(cur.rsi) && model.Defined(sma)

	if rsiReady && prev.rsi <= rule.Oversold && cur.rsi > rule.Oversold && bar.Close >= sma {
		return model.Signal{
			Date: bar.Date, Kind: model.SignalBuy,
			Close: bar.Close, SMA: sma, RSI: cur.rsi,
			Reason: fmt.Sprintf("%s crossed above %.0f with Close at or above %s", rule.RSIColumn, rule.Oversold, rule.SMAColumn),
		}, true
	}
	if rsiReady && prev.rsi >= rule.Overbought && cur.rsi < rule.Overbought && bar.Close <= sma {
		return model.Signal{
			Date: bar.Date, Kind: model.SignalSell,
			Close: bar.Close, SMA: sma, RSI: cur.rsi,
			Reason: fmt.Sprintf("%s crossed below %.0f with Close at or below %s", rule.RSIColumn, rule.Overbought, rule.SMAColumn),
		}, true
	}

	if !rule.Crossovers {
		return model.Signal{}, false
	}
	crossReady := model.Defined(prev.fast) && model.Defined(prev.slow) &&
		model.Defined(cur.fast) && model.Defined(cur.slow)
	if !crossReady {
		return model.Signal{}, false
	}

	if prev.fast < prev.slow && cur.fast > cur.slow {
		return model.Signal{
			Date: bar.Date, Kind: model.SignalBuy,
			Close: bar.Close, SMA: sma, RSI: cur.rsi,
			Reason: fmt.Sprintf("%s crossed above %s (bullish crossover)", rule.FastColumn, rule.SlowColumn),
		}, true
	}
	if prev.fast > prev.slow && cur.fast < cur.slow {
		return model.Signal{
			Date: bar.Date, Kind: model.SignalSell,
			Close: bar.Close, SMA: sma, RSI: cur.rsi,
			Reason: fmt.Sprintf("%s crossed below %s (bearish crossover)", rule.FastColumn, rule.SlowColumn),
		}, true
	}
	return model.Signal{}, false
}
