// Package scheduler runs the forecast pipeline on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers recurring forecast runs.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
	run  func() error
}

// New creates a Scheduler around the given run function.
func New(ctx context.Context, run func() error) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Ctx:  ctx,
		run:  run,
	}
}

// Register adds the forecast task under the given cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.task); err != nil {
		return fmt.Errorf("register forecast task: %w", err)
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

// RunNow executes the forecast task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.task()
}

func (s *Scheduler) task() {
	if err := s.Ctx.Err(); err != nil {
		return
	}
	log.Println("[INFO] running scheduled forecast")
	if err := s.run(); err != nil {
		log.Printf("[ERROR] scheduled forecast: %v", err)
	}
}
