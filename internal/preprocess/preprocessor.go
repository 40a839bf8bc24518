// Package preprocess implements the first pipeline stage: fetch raw daily
// bars per symbol, clean them, compute indicator columns, and persist the
// raw, cleaned and processed artifacts.
package preprocess

import (
	"fmt"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/calculator"
	"github.com/skylib11/Share-Market-Analysis/internal/collector"
	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/model"
	"github.com/skylib11/Share-Market-Analysis/internal/runlog"
	"github.com/skylib11/Share-Market-Analysis/internal/store"
)

// Preprocessor runs the fetch-and-preprocess stage over a symbol list.
type Preprocessor struct {
	Fetcher collector.Fetcher
	Cfg     *config.Config
	Log     *runlog.Logger
}

// Summary reports what a preprocessing run did.
type Summary struct {
	Processed int
	Skipped   int
}

// New creates a Preprocessor.
func New(fetcher collector.Fetcher, cfg *config.Config, log *runlog.Logger) *Preprocessor {
	return &Preprocessor{Fetcher: fetcher, Cfg: cfg, Log: log}
}

// Run processes each symbol in order. A symbol that fails is logged and
// skipped; it never aborts the rest of the batch.
func (p *Preprocessor) Run(symbols []store.Symbol) Summary {
	var sum Summary
	for _, sym := range symbols {
		if err := p.ProcessSymbol(sym); err != nil {
			p.Log.Warnf("skipping %s: %v", sym.Ticker, err)
			sum.Skipped++
			continue
		}
		sum.Processed++
	}
	p.Log.Infof("preprocessing done: %d processed, %d skipped", sum.Processed, sum.Skipped)
	return sum
}

// ProcessSymbol fetches, cleans, enriches and persists one symbol.
func (p *Preprocessor) ProcessSymbol(sym store.Symbol) error {
	start, err := p.Cfg.StartTime()
	if err != nil {
		return err
	}
	end, err := p.Cfg.EndTime()
	if err != nil {
		return err
	}

	bars, err := p.Fetcher.FetchDailyBars(sym.Ticker, start, end)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if len(bars) == 0 {
		return fmt.Errorf("data source returned no bars")
	}
	p.Log.Infof("fetched %d bars for %s", len(bars), sym.Ticker)

	if err := store.WriteBars(store.RawPath(p.Cfg.Output.RawDir, sym.Ticker), bars); err != nil {
		return fmt.Errorf("write raw data: %w", err)
	}

	cleaned, err := Clean(bars, p.Cfg.Clean.FillMethod)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if len(cleaned) < 2 {
		return fmt.Errorf("series too short after cleaning: %d bars", len(cleaned))
	}
	if err := store.WriteBars(store.CleanedPath(p.Cfg.Output.CleanedDir, sym.Ticker), cleaned); err != nil {
		return fmt.Errorf("write cleaned data: %w", err)
	}

	series, err := BuildSeries(sym.Ticker, cleaned, p.Cfg)
	if err != nil {
		return fmt.Errorf("compute indicators: %w", err)
	}

	path := store.ProcessedPath(p.Cfg.Output.ProcessedDir, sym.Ticker)
	if err := store.WriteProcessed(path, series); err != nil {
		return fmt.Errorf("write processed data: %w", err)
	}
	p.Log.Infof("saved processed data for %s to %s", sym.Ticker, path)
	return nil
}

// BuildSeries computes all configured indicator columns over a cleaned,
// date-ascending series. Pure apart from the FetchedAt stamp; columns whose
// warm-up exceeds the series length come out all-undefined.
func BuildSeries(symbol string, bars []model.PriceBar, cfg *config.Config) (*model.ProcessedSeries, error) {
	series := &model.ProcessedSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}
	closes := series.Closes()

	for _, w := range cfg.Indicators.SMAWindows {
		vals, err := calculator.SMASeries(closes, w)
		if err != nil {
			return nil, fmt.Errorf("SMA_%d: %w", w, err)
		}
		series.Columns = append(series.Columns, model.IndicatorColumn{
			Name:   fmt.Sprintf("SMA_%d", w),
			Values: vals,
		})
	}

	rsi, err := calculator.RSISeries(closes, cfg.Indicators.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("RSI_%d: %w", cfg.Indicators.RSIPeriod, err)
	}
	series.Columns = append(series.Columns, model.IndicatorColumn{
		Name:   fmt.Sprintf("RSI_%d", cfg.Indicators.RSIPeriod),
		Values: rsi,
	})

	returns := calculator.DailyReturns(closes)
	series.Columns = append(series.Columns, model.IndicatorColumn{
		Name:   "Daily_Return",
		Values: returns,
	})

	vol, err := calculator.RollingStdDev(returns, cfg.Indicators.VolatilityWindow)
	if err != nil {
		return nil, fmt.Errorf("Volatility_%d: %w", cfg.Indicators.VolatilityWindow, err)
	}
	series.Columns = append(series.Columns, model.IndicatorColumn{
		Name:   fmt.Sprintf("Volatility_%d", cfg.Indicators.VolatilityWindow),
		Values: vol,
	})

	return series, nil
}
