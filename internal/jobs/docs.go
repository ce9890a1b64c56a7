// Package jobs provides scheduled background tasks for the shipment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment service.
//
// # Available Jobs
//
// 1. DriverStandingJob - Runs every minute to deactivate drivers holding
// three or more delivered orders with unpaid commission.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep is idempotent: a failed run is only logged, the next run picks
// up whatever the failed one missed.
package jobs
