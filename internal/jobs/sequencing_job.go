package jobs

import (
	"context"
	"log/slog"
	"time"

	"routeengine/internal/core/application/usecases/commands"
	"routeengine/internal/core/domain/model/kernel"
	"routeengine/internal/core/ports"
	"routeengine/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultSequencingSpec runs sequencing every day at 03:30, after cleanup.
const DefaultSequencingSpec = "0 30 3 * * *"

// SequencingJob orders the routes of the next delivery day so drivers
// start from a fresh sequence and a new run snapshot is published.
type SequencingJob struct {
	handler commands.SequenceDayRoutesCommandHandler
	clock   ports.Clock
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSequencingJob creates the job. An empty spec means DefaultSequencingSpec.
func NewSequencingJob(
	handler commands.SequenceDayRoutesCommandHandler,
	clock ports.Clock,
	spec string,
	logger *slog.Logger,
) *SequencingJob {
	if spec == "" {
		spec = DefaultSequencingSpec
	}
	return &SequencingJob{
		handler: handler,
		clock:   clock,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(clock.Now().Location())),
		logger:  logger.With("component", "sequencing_job"),
	}
}

// Start schedules the job.
func (j *SequencingJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.ErrorContext(context.Background(), "Sequencing job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sequencing job started", "spec", j.spec)
	return nil
}

// Stop stops the job and waits for a running pass to finish.
func (j *SequencingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sequencing job stopped")
}

// RunOnce sequences every route of tomorrow's weekday.
func (j *SequencingJob) RunOnce(ctx context.Context) error {
	day := kernel.DayOf(j.clock.Now().AddDate(0, 0, 1))

	cmd, err := commands.NewSequenceDayRoutesCommand(day, nil)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	metrics.ObservePass(metrics.PassSequence, started, false, err)
	if err != nil {
		return err
	}
	metrics.StopsSequenced.Add(float64(result.Sequenced))

	j.logger.InfoContext(ctx, "Routes sequenced",
		"day", day.String(), "run_id", result.Run.ID().String(),
		"sequenced", result.Sequenced, "published", result.Published)
	return nil
}
