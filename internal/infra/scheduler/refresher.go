package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	defaultSchedule = "0 0 0 * * *"
	runTimeout      = 30 * time.Second
)

// Invalidator drops cached snapshots so the next request rebuilds them.
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Recorder counts completed invalidations.
type Recorder interface {
	RecordInvalidation()
}

// DailyRefresher clears dashboard snapshots on a cron schedule evaluated in
// the service's time zone, so cached days roll over at local midnight.
type DailyRefresher struct {
	target   Invalidator
	recorder Recorder
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewDailyRefresher builds a refresher. recorder may be nil.
func NewDailyRefresher(target Invalidator, recorder Recorder, schedule string, loc *time.Location, logger *slog.Logger) *DailyRefresher {
	if schedule == "" {
		schedule = defaultSchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DailyRefresher{
		target:   target,
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		schedule: schedule,
		logger:   logger.With("component", "scheduler.refresher"),
	}
}

// Start registers the job and starts the cron loop.
func (r *DailyRefresher) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, r.RunNow); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("snapshot refresher started", "schedule", r.schedule)
	return nil
}

// Stop halts the cron loop and waits for a running job.
func (r *DailyRefresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("snapshot refresher stopped")
}

// RunNow invalidates snapshots synchronously.
func (r *DailyRefresher) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := r.target.InvalidateAll(ctx); err != nil {
		r.logger.Error("snapshot invalidation failed", "error", err)
		return
	}
	if r.recorder != nil {
		r.recorder.RecordInvalidation()
	}
	r.logger.Info("snapshots invalidated")
}
