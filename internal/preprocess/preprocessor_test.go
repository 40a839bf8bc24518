package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/collector"
	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/model"
	"github.com/skylib11/Share-Market-Analysis/internal/runlog"
	"github.com/skylib11/Share-Market-Analysis/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	cfg.Range.StartDate = "2024-01-01"
	cfg.Range.EndDate = "2024-12-31"
	cfg.Output.RawDir = filepath.Join(dir, "raw_data")
	cfg.Output.CleanedDir = filepath.Join(dir, "cleaned_data")
	cfg.Output.ProcessedDir = filepath.Join(dir, "processed_data")
	cfg.Output.SignalsDir = filepath.Join(dir, "signals")
	cfg.Output.LogDir = filepath.Join(dir, "logs")
	return cfg
}

func fixedBars(count int) []model.PriceBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return collector.GenerateBars(100, count, start)
}

func TestProcessSymbol_WritesAllArtifacts(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		BarsBySymbol: map[string][]model.PriceBar{"ACME": fixedBars(60)},
	}
	p := New(fetcher, cfg, runlog.Discard())

	if err := p.ProcessSymbol(store.Symbol{Ticker: "ACME"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, path := range []string{
		store.RawPath(cfg.Output.RawDir, "ACME"),
		store.CleanedPath(cfg.Output.CleanedDir, "ACME"),
		store.ProcessedPath(cfg.Output.ProcessedDir, "ACME"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected artifact %s: %v", path, err)
		}
	}

	series, err := store.ReadProcessed(store.ProcessedPath(cfg.Output.ProcessedDir, "ACME"), "ACME")
	if err != nil {
		t.Fatalf("read processed: %v", err)
	}
	if len(series.Bars) != 60 {
		t.Errorf("expected 60 rows, got %d", len(series.Bars))
	}
	for _, name := range []string{"SMA_20", "SMA_50", "SMA_200", "RSI_14", "Daily_Return", "Volatility_20"} {
		if series.Column(name) == nil {
			t.Errorf("missing indicator column %s", name)
		}
	}
	// 60 bars cannot fill a 200-day window: the column exists but stays undefined.
	sma200 := series.Column("SMA_200")
	for i, v := range sma200.Values {
		if model.Defined(v) {
			t.Errorf("SMA_200 index %d: expected undefined for short series, got %v", i, v)
		}
	}
}

func TestProcessSymbol_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		BarsBySymbol: map[string][]model.PriceBar{"ACME": fixedBars(40)},
	}
	p := New(fetcher, cfg, runlog.Discard())
	path := store.ProcessedPath(cfg.Output.ProcessedDir, "ACME")

	if err := p.ProcessSymbol(store.Symbol{Ticker: "ACME"}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first artifact: %v", err)
	}

	if err := p.ProcessSymbol(store.Symbol{Ticker: "ACME"}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second artifact: %v", err)
	}

	if string(first) != string(second) {
		t.Error("identical input must produce a byte-identical processed artifact")
	}
}

func TestRun_EmptyFetchSkipsSymbolAndContinues(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		BarsBySymbol: map[string][]model.PriceBar{"GOOD": fixedBars(40)},
	}
	rl, err := runlog.Open(cfg.Output.LogDir, "test.log")
	if err != nil {
		t.Fatalf("open runlog: %v", err)
	}
	defer rl.Close()

	p := New(fetcher, cfg, rl)
	sum := p.Run([]store.Symbol{{Ticker: "EMPTY"}, {Ticker: "GOOD"}})
	if sum.Skipped != 1 || sum.Processed != 1 {
		t.Fatalf("expected 1 skipped and 1 processed, got %+v", sum)
	}

	if _, err := os.Stat(store.ProcessedPath(cfg.Output.ProcessedDir, "EMPTY")); !os.IsNotExist(err) {
		t.Error("empty symbol must not produce a processed artifact")
	}
	if _, err := os.Stat(store.ProcessedPath(cfg.Output.ProcessedDir, "GOOD")); err != nil {
		t.Errorf("later symbol must still be processed: %v", err)
	}

	logData, err := os.ReadFile(filepath.Join(cfg.Output.LogDir, "test.log"))
	if err != nil {
		t.Fatalf("read runlog: %v", err)
	}
	if !strings.Contains(string(logData), "skipping EMPTY") {
		t.Error("expected a log entry for the skipped symbol")
	}
}

func TestProcessSymbol_TooShortSeries(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		BarsBySymbol: map[string][]model.PriceBar{"TINY": fixedBars(1)},
	}
	p := New(fetcher, cfg, runlog.Discard())
	if err := p.ProcessSymbol(store.Symbol{Ticker: "TINY"}); err == nil {
		t.Error("expected error for a series too short to compute anything")
	}
	if _, err := os.Stat(store.ProcessedPath(cfg.Output.ProcessedDir, "TINY")); !os.IsNotExist(err) {
		t.Error("too-short symbol must not produce a processed artifact")
	}
}
