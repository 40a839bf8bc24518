// Package scheduler runs the pipeline on a cron schedule for daemon mode.
// Each tick is one full, independent batch run.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job function on a cron expression.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
}

// New creates a Scheduler.
func New(ctx context.Context) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Ctx:  ctx,
	}
}

// Register adds the pipeline job on the given cron expression. Ticks that
// arrive after the context is cancelled are ignored.
func (s *Scheduler) Register(spec string, job func()) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		select {
		case <-s.Ctx.Done():
			return
		default:
		}
		job()
	}); err != nil {
		return fmt.Errorf("register pipeline job: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
