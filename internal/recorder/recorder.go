package recorder

import (
	"time"

	"github.com/skylib11/Share-Market-Analysis/internal/model"
)

// RunRecord summarizes one completed detection run.
type RunRecord struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time
	Scanned   int
	Skipped   int
	Signals   int
}

// Recorder persists signal history for later analysis.
type Recorder interface {
	RecordSignal(runID string, sig model.Signal) error
	RecordRun(rec *RunRecord) error
	Close() error
}
