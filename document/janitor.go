package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically sweeps artifacts a crashed process never released.
// Request-scoped cleanup does not depend on it.
type Janitor struct {
	sweeper Sweeper
	maxAge  time.Duration
	logger  *slog.Logger
	cron    *cron.Cron
	now     func() time.Time
}

// NewJanitor schedules a sweep of artifacts older than maxAge using a
// standard cron expression or descriptor such as "@every 15m".
func NewJanitor(sweeper Sweeper, schedule string, maxAge time.Duration, logger *slog.Logger) (*Janitor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("janitor: max age must be positive, got %s", maxAge)
	}
	j := &Janitor{
		sweeper: sweeper,
		maxAge:  maxAge,
		logger:  logger,
		cron:    cron.New(),
		now:     time.Now,
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("failed to add janitor job: %w", err)
	}
	return j, nil
}

// Start begins running the schedule in the background.
func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("janitor started", "max_age", j.maxAge)
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one sweep and returns how many artifacts were removed.
func (j *Janitor) RunOnce(ctx context.Context) int {
	cutoff := j.now().Add(-j.maxAge)
	n, err := j.sweeper.Sweep(ctx, cutoff)
	if err != nil {
		j.logger.Warn("janitor sweep failed", "removed", n, "error", err)
		return n
	}
	if n > 0 {
		j.logger.Info("janitor removed stale artifacts", "removed", n)
	}
	return n
}
