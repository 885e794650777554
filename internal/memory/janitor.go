package memory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically purges conversations that have been idle longer
// than a configured duration, so a long-running process does not hold
// history for users who stopped talking to it.
type Janitor struct {
	store    Store
	schedule string
	maxIdle  time.Duration
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewJanitor creates a Janitor sweeping on the given cron schedule
// (e.g. "@every 10m").
func NewJanitor(store Store, schedule string, maxIdle time.Duration, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		store:    store,
		schedule: schedule,
		maxIdle:  maxIdle,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the sweep job and launches the scheduler.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return fmt.Errorf("memory: invalid janitor schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish or the
// context to expire.
func (j *Janitor) Stop(ctx context.Context) error {
	select {
	case <-j.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Janitor) sweep() {
	if n := j.store.PurgeIdle(j.maxIdle); n > 0 {
		j.logger.Info("purged idle conversations",
			"count", n,
			"max_idle", j.maxIdle,
		)
	}
}
