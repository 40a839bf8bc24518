package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SymbolsFile string `yaml:"symbols_file"`
	DataSource  struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Range struct {
		StartDate string `yaml:"start_date"` // yyyy-mm-dd
		EndDate   string `yaml:"end_date"`   // yyyy-mm-dd, empty means today
	} `yaml:"range"`
	Clean struct {
		FillMethod string `yaml:"fill_method"` // "drop" or "ffill"
	} `yaml:"clean"`
	Indicators struct {
		SMAWindows       []int `yaml:"sma_windows"`
		RSIPeriod        int   `yaml:"rsi_period"`
		VolatilityWindow int   `yaml:"volatility_window"`
	} `yaml:"indicators"`
	Signals struct {
		Oversold     float64 `yaml:"oversold"`
		Overbought   float64 `yaml:"overbought"`
		SMAWindow    int     `yaml:"sma_window"`
		Crossovers   *bool   `yaml:"crossovers"`
		FastSMA      int     `yaml:"fast_sma"`
		SlowSMA      int     `yaml:"slow_sma"`
		LookbackDays int     `yaml:"lookback_days"` // 0 scans the whole series
	} `yaml:"signals"`
	Output struct {
		RawDir       string `yaml:"raw_dir"`
		CleanedDir   string `yaml:"cleaned_dir"`
		ProcessedDir string `yaml:"processed_dir"`
		SignalsDir   string `yaml:"signals_dir"`
		LogDir       string `yaml:"log_dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOLS_FILE"); v != "" {
		cfg.SymbolsFile = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("START_DATE"); v != "" {
		cfg.Range.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		cfg.Range.EndDate = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.SymbolsFile == "" {
		cfg.SymbolsFile = "configs/company_list.csv"
	}
	if cfg.Range.StartDate == "" {
		cfg.Range.StartDate = "2023-01-01"
	}
	if cfg.Clean.FillMethod == "" {
		cfg.Clean.FillMethod = "drop"
	}
	if len(cfg.Indicators.SMAWindows) == 0 {
		cfg.Indicators.SMAWindows = []int{20, 50, 200}
	}
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.VolatilityWindow == 0 {
		cfg.Indicators.VolatilityWindow = 20
	}
	if cfg.Signals.Oversold == 0 {
		cfg.Signals.Oversold = 30
	}
	if cfg.Signals.Overbought == 0 {
		cfg.Signals.Overbought = 70
	}
	if cfg.Signals.SMAWindow == 0 {
		cfg.Signals.SMAWindow = 20
	}
	if cfg.Signals.Crossovers == nil {
		on := true
		cfg.Signals.Crossovers = &on
	}
	if cfg.Signals.FastSMA == 0 {
		cfg.Signals.FastSMA = 20
	}
	if cfg.Signals.SlowSMA == 0 {
		cfg.Signals.SlowSMA = 50
	}
	if cfg.Output.RawDir == "" {
		cfg.Output.RawDir = "raw_data"
	}
	if cfg.Output.CleanedDir == "" {
		cfg.Output.CleanedDir = "cleaned_data"
	}
	if cfg.Output.ProcessedDir == "" {
		cfg.Output.ProcessedDir = "processed_data"
	}
	if cfg.Output.SignalsDir == "" {
		cfg.Output.SignalsDir = "signals"
	}
	if cfg.Output.LogDir == "" {
		cfg.Output.LogDir = "logs"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signals.db"
	}

	return cfg, nil
}

// StartTime parses the configured start date.
func (c *Config) StartTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Range.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("range.start_date: %w", err)
	}
	return t, nil
}

// EndTime parses the configured end date, defaulting to today.
func (c *Config) EndTime() (time.Time, error) {
	if c.Range.EndDate == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", c.Range.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("range.end_date: %w", err)
	}
	return t, nil
}

// CrossoversEnabled reports whether SMA crossover signals are enabled.
func (c *Config) CrossoversEnabled() bool {
	return c.Signals.Crossovers != nil && *c.Signals.Crossovers
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.SymbolsFile == "" {
		return fmt.Errorf("symbols_file is required")
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	end, err := c.EndTime()
	if err != nil {
		return err
	}
	start, _ := c.StartTime()
	if end.Before(start) {
		return fmt.Errorf("range.end_date %s is before range.start_date %s", c.Range.EndDate, c.Range.StartDate)
	}
	if c.Clean.FillMethod != "drop" && c.Clean.FillMethod != "ffill" {
		return fmt.Errorf("clean.fill_method must be \"drop\" or \"ffill\", got %q", c.Clean.FillMethod)
	}
	for _, w := range c.Indicators.SMAWindows {
		if w < 1 {
			return fmt.Errorf("indicators.sma_windows must be positive, got %d", w)
		}
	}
	if c.Indicators.RSIPeriod < 2 {
		return fmt.Errorf("indicators.rsi_period must be at least 2, got %d", c.Indicators.RSIPeriod)
	}
	if c.Signals.Oversold >= c.Signals.Overbought {
		return fmt.Errorf("signals.oversold (%.0f) must be below signals.overbought (%.0f)", c.Signals.Oversold, c.Signals.Overbought)
	}
	if !containsWindow(c.Indicators.SMAWindows, c.Signals.SMAWindow) {
		return fmt.Errorf("signals.sma_window %d is not in indicators.sma_windows", c.Signals.SMAWindow)
	}
	if c.CrossoversEnabled() {
		if !containsWindow(c.Indicators.SMAWindows, c.Signals.FastSMA) {
			return fmt.Errorf("signals.fast_sma %d is not in indicators.sma_windows", c.Signals.FastSMA)
		}
		if !containsWindow(c.Indicators.SMAWindows, c.Signals.SlowSMA) {
			return fmt.Errorf("signals.slow_sma %d is not in indicators.sma_windows", c.Signals.SlowSMA)
		}
		if c.Signals.FastSMA >= c.Signals.SlowSMA {
			return fmt.Errorf("signals.fast_sma (%d) must be below signals.slow_sma (%d)", c.Signals.FastSMA, c.Signals.SlowSMA)
		}
	}
	return nil
}

func containsWindow(windows []int, w int) bool {
	for _, x := range windows {
		if x == w {
			return true
		}
	}
	return false
}
