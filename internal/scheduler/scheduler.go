package scheduler

import (
	"fmt"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/robfig/cron/v3"
)

// Reconciler is the job the scheduler runs
type Reconciler interface {
	RunScheduled()
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the reconciliation job under spec, a six-field cron expression
func NewScheduler(spec string, reconciler Reconciler) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(spec, reconciler.RunScheduled); err != nil {
		return nil, fmt.Errorf("failed to register ReconcileLedger job: %w", err)
	}
	logger.Info("Cron jobs registered", "reconcileSpec", spec)

	return &Scheduler{cron: c}, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
