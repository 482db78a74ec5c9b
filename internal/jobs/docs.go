// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the storefront.
//
// # Available Jobs
//
// 1. ShipmentRetryJob - Runs every minute to provision shipments for paid
// orders whose carrier call failed during payment confirmation
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(unshippedOrdersHandler, createShipmentHandler, logger)
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
// The retry job uses the cron expression "0 * * * * *" which means it runs
// once a minute. Carrier outages usually last minutes, so a tighter schedule
// would only hammer a failing API.
//
// # Error Handling
//
// - Per-order provisioning failures are logged and retried on the next run
// - A failed sweep never stops the schedule
package jobs
