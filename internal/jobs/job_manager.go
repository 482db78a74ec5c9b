package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	shipmentRetryJob *ShipmentRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	unshippedOrdersHandler queries.GetUnshippedOrdersQueryHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		shipmentRetryJob: NewShipmentRetryJob(unshippedOrdersHandler, createShipmentHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.shipmentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.shipmentRetryJob.Stop()
}
