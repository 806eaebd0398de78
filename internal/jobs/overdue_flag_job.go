package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// OverdueFlagJob periodically sweeps in-transit parcels past their estimated
// delivery window and flags them for administrative review.
type OverdueFlagJob struct {
	handler  commands.FlagOverdueParcelsCommandHandler
	actorID  kernel.UUID
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueFlagJob creates the overdue sweep job.
// The actorID identifies the system account recorded on the flagged log entries;
// schedule is a six-field cron expression.
func NewOverdueFlagJob(
	handler commands.FlagOverdueParcelsCommandHandler,
	actorID kernel.UUID,
	schedule string,
	logger *slog.Logger,
) *OverdueFlagJob {
	return &OverdueFlagJob{
		handler:  handler,
		actorID:  actorID,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_flag_job"),
	}
}

// Start begins the overdue sweep on the configured schedule.
func (j *OverdueFlagJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewFlagOverdueParcelsCommand(j.actorID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Overdue flag job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Overdue flag job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue flag job started", "schedule", j.schedule)
	return nil
}

// Stop stops the overdue sweep job.
func (j *OverdueFlagJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue flag job stopped")
}
