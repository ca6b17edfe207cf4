// Package scheduler drives the index sync pipeline from a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobseek/internal/pipeline"

	"github.com/robfig/cron/v3"
)

const DefaultSpec = "@every 1h"

type syncRunner interface {
	Run(ctx context.Context) (pipeline.SyncReport, error)
}

// Scheduler wraps robfig/cron and fires one sync pass per tick. Ticks that
// land while a pass is still running are skipped.
type Scheduler struct {
	cron      *cron.Cron
	runner    syncRunner
	spec      string
	onStartup bool
	log       *log.Logger
}

func New(runner syncRunner, spec string, onStartup bool, logger *log.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		runner:    runner,
		spec:      spec,
		onStartup: onStartup,
		log:       logger,
	}
}

// Start registers the sync job and starts the cron loop. With onStartup set
// one pass also runs immediately in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runSync(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Printf("[Scheduler] Cron started spec=%s", s.spec)

	if s.onStartup {
		go s.runSync(ctx)
	}
	return nil
}

// Stop halts the schedule and waits for a running pass to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Printf("[Scheduler] Cron stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	_, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrSyncInProgress):
		s.log.Printf("[Scheduler] Sync tick skipped: pass already running")
	case err != nil:
		s.log.Printf("[Scheduler] Sync pass error: %v", err)
	}
}
