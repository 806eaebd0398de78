// Package jobs provides scheduled background tasks for the parcel tracking
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the parcel lifecycle.
//
// # Available Jobs
//
// 1. OverdueFlagJob - Sweeps non-terminal parcels whose estimated delivery
// has passed and moves them to Flagged for operator review
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(flagOverdueHandler, systemActorID, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression (seconds included) taken
// from configuration, typically a few times per hour. Every sweep is
// attributed to the configured system actor in the parcel status log.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Failed job starts surface immediately so the process can exit
package jobs
