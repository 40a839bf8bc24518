// Package runlog provides the append-only human-readable run log. It is an
// explicit object passed to each pipeline component rather than a
// process-wide singleton.
package runlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger tees timestamped log lines to stdout and an append-only file.
type Logger struct {
	l *log.Logger
	f *os.File
}

// Open creates (or appends to) the named log file under dir.
func Open(dir, name string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{
		l: log.New(io.MultiWriter(os.Stdout, f), "", 0),
		f: f,
	}, nil
}

// Discard returns a logger that writes nowhere, for tests.
func Discard() *Logger {
	return &Logger{l: log.New(io.Discard, "", 0)}
}

func (l *Logger) logf(level, format string, args ...interface{}) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.l.Printf("[%s] [%s] %s", ts, level, fmt.Sprintf(format, args...))
}

// Infof logs an informational line.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf("INFO", format, args...)
}

// Warnf logs a warning line (skipped symbols, fetch failures).
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

// Errorf logs an error line.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
