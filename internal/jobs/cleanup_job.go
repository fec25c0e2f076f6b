package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/ports"
	"routeengine/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSpec runs the cleanup pass every day at 03:00.
const DefaultCleanupSpec = "0 0 3 * * *"

// CleanupJob removes duplicate stops of the current weekday and fills gaps
// in the stable route order. Both passes are idempotent, so a missed or
// repeated run is harmless.
type CleanupJob struct {
	dedup     commands.DeduplicateStopsCommandHandler
	reconcile commands.ReconcileRouteOrdersCommandHandler
	clock     ports.Clock
	spec      string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCleanupJob creates the job. An empty spec means DefaultCleanupSpec.
func NewCleanupJob(
	dedup commands.DeduplicateStopsCommandHandler,
	reconcile commands.ReconcileRouteOrdersCommandHandler,
	clock ports.Clock,
	spec string,
	logger *slog.Logger,
) *CleanupJob {
	if spec == "" {
		spec = DefaultCleanupSpec
	}
	return &CleanupJob{
		dedup:     dedup,
		reconcile: reconcile,
		clock:     clock,
		spec:      spec,
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(clock.Now().Location())),
		logger:    logger.With("component", "cleanup_job"),
	}
}

// Start schedules the job.
func (j *CleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.ErrorContext(context.Background(), "Cleanup job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cleanup job started", "spec", j.spec)
	return nil
}

// Stop stops the job and waits for a running pass to finish.
func (j *CleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cleanup job stopped")
}

// RunOnce deduplicates today's weekday and reconciles the route order. The
// reconcile pass runs even when deduplication fails.
func (j *CleanupJob) RunOnce(ctx context.Context) error {
	day := kernel.DayOf(j.clock.Now())

	var dedupErr error
	cmd, err := commands.NewDeduplicateStopsCommand(day)
	if err != nil {
		dedupErr = err
	} else {
		started := time.Now()
		result, err := j.dedup.Handle(ctx, cmd)
		metrics.ObservePass(metrics.PassDedup, started, len(result.SkippedDrivers) > 0, err)
		if err != nil {
			dedupErr = err
		} else {
			metrics.StopsRemoved.Add(float64(len(result.Removed)))
			j.logger.InfoContext(ctx, "Duplicate stops removed",
				"day", day.String(), "removed", len(result.Removed), "skipped_drivers", len(result.SkippedDrivers))
		}
	}

	started := time.Now()
	result, reconcileErr := j.reconcile.Handle(ctx, commands.NewReconcileRouteOrdersCommand())
	metrics.ObservePass(metrics.PassReconcile, started, false, reconcileErr)
	if reconcileErr == nil {
		j.logger.InfoContext(ctx, "Route order reconciled",
			"checked", result.Checked, "inserted", result.Inserted)
	}

	return errors.Join(dedupErr, reconcileErr)
}
