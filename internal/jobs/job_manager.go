package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueFlagJob *OverdueFlagJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	flagOverdueHandler commands.FlagOverdueParcelsCommandHandler,
	systemActorID kernel.UUID,
	overdueSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueFlagJob: NewOverdueFlagJob(flagOverdueHandler, systemActorID, overdueSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueFlagJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue flag job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueFlagJob.Stop()
}
