package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cleanupJob    *CleanupJob
	sequencingJob *SequencingJob
}

// NewJobManager creates a job manager over already built jobs.
func NewJobManager(cleanupJob *CleanupJob, sequencingJob *SequencingJob) *JobManager {
	return &JobManager{
		cleanupJob:    cleanupJob,
		sequencingJob: sequencingJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start cleanup job: %w", err)
	}

	if err := jm.sequencingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.cleanupJob.Stop()
		return fmt.Errorf("failed to start sequencing job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sequencingJob.Stop()
	jm.cleanupJob.Stop()
}
