package detector

import (
	"fmt"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/model"
	"github.com/skylib11/Share-Market-Analysis/internal/recorder"
	"github.com/skylib11/Share-Market-Analysis/internal/runlog"
	"github.com/skylib11/Share-Market-Analysis/internal/store"
)

// Runner drives the scan-and-signal stage over all processed artifacts.
type Runner struct {
	Cfg *config.Config
	Log *runlog.Logger
	Rec recorder.Recorder
}

// Summary reports what a detection run did.
type Summary struct {
	Scanned int
	Skipped int
	Signals int
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, log *runlog.Logger, rec recorder.Recorder) *Runner {
	return &Runner{Cfg: cfg, Log: log, Rec: rec}
}

// Run scans every processed series, appending detected signals to the
// per-run CSV artifact, the recorder and the run log. A series that cannot
// be read or is missing required columns is logged and skipped.
func (r *Runner) Run(runID string, startedAt time.Time) (Summary, error) {
	var sum Summary

	symbols, err := store.ListProcessed(r.Cfg.Output.ProcessedDir)
	if err != nil {
		return sum, fmt.Errorf("list processed data: %w", err)
	}
	if len(symbols) == 0 {
		r.Log.Warnf("no processed data found in %s, run the preprocessor first", r.Cfg.Output.ProcessedDir)
		return sum, nil
	}

	writer, err := store.NewSignalWriter(r.Cfg.Output.SignalsDir, runID, startedAt)
	if err != nil {
		return sum, fmt.Errorf("create signals artifact: %w", err)
	}
	defer writer.Close()

	rule := RuleFromConfig(r.Cfg)
	var since time.Time
	if r.Cfg.Signals.LookbackDays > 0 {
		since = startedAt.AddDate(0, 0, -r.Cfg.Signals.LookbackDays)
	}

	for _, symbol := range symbols {
		path := store.ProcessedPath(r.Cfg.Output.ProcessedDir, symbol)
		series, err := store.ReadProcessed(path, symbol)
		if err != nil {
			r.Log.Warnf("skipping %s: %v", symbol, err)
			sum.Skipped++
			continue
		}

		signals, err := Scan(series, rule, since)
		if err != nil {
			r.Log.Warnf("skipping %s: %v", symbol, err)
			sum.Skipped++
			continue
		}

		for _, sig := range signals {
			if err := writer.Append(sig); err != nil {
				return sum, fmt.Errorf("append signal: %w", err)
			}
			if err := r.Rec.RecordSignal(runID, sig); err != nil {
				r.Log.Errorf("record signal for %s: %v", symbol, err)
			}
			r.Log.Infof("%s signal for %s on %s: %s (Close=%.2f SMA=%.2f RSI=%.2f)",
				sig.Kind, sig.Symbol, sig.Date.Format(model.DateLayout), sig.Reason, sig.Close, sig.SMA, sig.RSI)
		}
		if len(signals) == 0 {
			r.Log.Infof("no signals detected for %s", symbol)
		}
		sum.Scanned++
		sum.Signals += len(signals)
	}

	r.Log.Infof("signal scan done: %d scanned, %d skipped, %d signals (artifact %s)",
		sum.Scanned, sum.Skipped, sum.Signals, writer.Path)
	if err := r.Rec.RecordRun(&recorder.RunRecord{
		RunID:     runID,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
		Scanned:   sum.Scanned,
		Skipped:   sum.Skipped,
		Signals:   sum.Signals,
	}); err != nil {
		r.Log.Errorf("record run: %v", err)
	}
	return sum, nil
}
