// Package jobs provides scheduled background passes for the routing engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use six fields (seconds first) and run in the engine timezone.
//
// # Available Jobs
//
// 1. CleanupJob - daily: removes stops claimed by more than one driver on the
// current weekday, then adds missing stable route order entries.
// 2. SequencingJob - daily: orders every route of the next weekday by nearest
// neighbour and publishes the resulting run.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewCleanupJob(dedupHandler, reconcileHandler, clock, "", logger),
//		jobs.NewSequencingJob(sequenceHandler, clock, "", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and counted in the route_pass_runs_total metric. Both
// passes are idempotent and the next schedule retries them.
package jobs
