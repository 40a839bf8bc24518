// Package pipeline wires the two batch stages together for the commands.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/skylib11/Share-Market-Analysis/internal/collector"
	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/detector"
	"github.com/skylib11/Share-Market-Analysis/internal/preprocess"
	"github.com/skylib11/Share-Market-Analysis/internal/recorder"
	"github.com/skylib11/Share-Market-Analysis/internal/runlog"
	"github.com/skylib11/Share-Market-Analysis/internal/store"
)

// NewFetcher builds the configured data source: a generic REST fetcher when
// data_source.base_url is set, Yahoo Finance otherwise.
func NewFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.BaseURL != "" {
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}

// RunPreprocess executes the fetch-and-preprocess stage. An unreadable or
// empty symbol list is fatal and aborts before any symbol is processed;
// per-symbol failures are logged and skipped inside the run.
func RunPreprocess(cfg *config.Config, fetcher collector.Fetcher) error {
	symbols, err := store.LoadSymbols(cfg.SymbolsFile)
	if err != nil {
		return fmt.Errorf("load symbols: %w", err)
	}

	rl, err := runlog.Open(cfg.Output.LogDir, "data_processing.log")
	if err != nil {
		return err
	}
	defer rl.Close()

	rl.Infof("data processing started: %d symbols, source %s", len(symbols), fetcher.Name())
	preprocess.New(fetcher, cfg, rl).Run(symbols)
	return nil
}

// RunDetect executes the scan-and-signal stage under a fresh run ID.
func RunDetect(cfg *config.Config) error {
	rl, err := runlog.Open(cfg.Output.LogDir, "buy_sell_signals.log")
	if err != nil {
		return err
	}
	defer rl.Close()

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	runID := uuid.NewString()
	startedAt := time.Now()
	rl.Infof("buy/sell signal detection started (run %s)", runID[:8])
	if _, err := detector.NewRunner(cfg, rl, rec).Run(runID, startedAt); err != nil {
		return err
	}
	rl.Infof("buy/sell signal detection completed (run %s)", runID[:8])
	return nil
}

// RunAll executes both stages sequentially.
func RunAll(cfg *config.Config, fetcher collector.Fetcher) error {
	if err := RunPreprocess(cfg, fetcher); err != nil {
		return err
	}
	return RunDetect(cfg)
}
