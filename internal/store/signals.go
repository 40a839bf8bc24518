package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

var signalHeader = []string{"Symbol", "Date", "Signal", "Close", "SMA", "RSI_14", "Reason"}

// SignalWriter appends detected signals to the per-run signals artifact.
// Rows are never rewritten once appended.
type SignalWriter struct {
	Path string
	f    *os.File
	w    *csv.Writer
}

// NewSignalWriter creates the per-run signals CSV, named by run time and ID.
func NewSignalWriter(dir, runID string, startedAt time.Time) (*SignalWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("trade_signals_%s_%s.csv",
		startedAt.Format("20060102_150405"), runID[:8]))
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(signalHeader); err != nil {
		f.Close()
		return nil, err
	}
	return &SignalWriter{Path: path, f: f, w: w}, nil
}

// Append writes one signal row and flushes it to disk.
func (s *SignalWriter) Append(sig model.Signal) error {
	row := []string{
		sig.Symbol,
		sig.Date.Format(model.DateLayout),
		string(sig.Kind),
		formatCell(sig.Close),
		formatCell(sig.SMA),
		formatCell(sig.RSI),
		sig.Reason,
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// Close flushes and closes the artifact.
func (s *SignalWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
