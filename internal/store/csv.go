package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

var barHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// RawPath returns the raw-data artifact path for a symbol.
func RawPath(dir, symbol string) string {
	return filepath.Join(dir, symbol+"_historical_data.csv")
}

// CleanedPath returns the cleaned-data artifact path for a symbol.
func CleanedPath(dir, symbol string) string {
	return filepath.Join(dir, symbol+"_cleaned_data.csv")
}

// ProcessedPath returns the processed-data artifact path for a symbol.
func ProcessedPath(dir, symbol string) string {
	return filepath.Join(dir, symbol+"_processed_data.csv")
}

// WriteBars writes a plain OHLCV series (raw or cleaned artifact), one row
// per trading day, date-ascending, overwriting any previous file.
func WriteBars(path string, bars []model.PriceBar) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write(barHeader); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write(barRow(b)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteProcessed writes the enriched series with one column per indicator,
// overwriting any previous file. Undefined (warm-up) cells are left empty.
func WriteProcessed(path string, series *model.ProcessedSeries) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := append([]string{}, barHeader...)
	for _, col := range series.Columns {
		header = append(header, col.Name)
	}

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write(header); err != nil {
		return err
	}
	for i, b := range series.Bars {
		row := barRow(b)
		for _, col := range series.Columns {
			row = append(row, formatCell(col.Values[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadProcessed reads a processed artifact back into a ProcessedSeries.
// Columns beyond the six OHLCV fields become indicator columns; empty cells
// read as NaN.
func ReadProcessed(path, symbol string) (*model.ProcessedSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	if len(header) < len(barHeader) {
		return nil, fmt.Errorf("%s: header too short", path)
	}
	for i, want := range barHeader {
		if header[i] != want {
			return nil, fmt.Errorf("%s: expected column %q at position %d, got %q", path, want, i, header[i])
		}
	}

	series := &model.ProcessedSeries{Symbol: symbol}
	for _, name := range header[len(barHeader):] {
		series.Columns = append(series.Columns, model.IndicatorColumn{Name: name})
	}

	for n, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, n+2, len(rec), len(header))
		}
		date, err := time.Parse(model.DateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, n+2, err)
		}
		bar := model.PriceBar{Date: date}
		for i, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume} {
			v, err := parseCell(rec[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", path, n+2, err)
			}
			*dst = v
		}
		series.Bars = append(series.Bars, bar)
		for i := range series.Columns {
			v, err := parseCell(rec[len(barHeader)+i])
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", path, n+2, err)
			}
			series.Columns[i].Values = append(series.Columns[i].Values, v)
		}
	}
	return series, nil
}

// ListProcessed returns the symbols that have a processed artifact in dir,
// sorted by file name.
func ListProcessed(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var symbols []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, "_processed_data.csv") {
			symbols = append(symbols, strings.TrimSuffix(name, "_processed_data.csv"))
		}
	}
	return symbols, nil
}

func barRow(b model.PriceBar) []string {
	return []string{
		b.Date.Format(model.DateLayout),
		formatCell(b.Open),
		formatCell(b.High),
		formatCell(b.Low),
		formatCell(b.Close),
		strconv.FormatFloat(b.Volume, 'f', 0, 64),
	}
}

// formatCell rounds to 2 decimals on disk; computation stays full precision.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parseCell(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
