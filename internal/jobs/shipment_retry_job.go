package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ShipmentRetryJob re-runs shipment provisioning for paid orders that have no
// tracking id yet. These are the orders whose carrier call failed during
// payment confirmation and were committed as Paid anyway.
type ShipmentRetryJob struct {
	unshippedHandler queries.GetUnshippedOrdersQueryHandler
	shipmentHandler  commands.CreateShipmentCommandHandler
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewShipmentRetryJob creates a new job for retrying deferred shipments.
// Uses CreateShipmentCommandHandler per order, which is idempotent, so a
// sweep racing a concurrent confirmation retry is harmless.
func NewShipmentRetryJob(
	unshippedHandler queries.GetUnshippedOrdersQueryHandler,
	shipmentHandler commands.CreateShipmentCommandHandler,
	logger *slog.Logger,
) *ShipmentRetryJob {
	return &ShipmentRetryJob{
		unshippedHandler: unshippedHandler,
		shipmentHandler:  shipmentHandler,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger.With("component", "shipment_retry_job"),
	}
}

// Start begins the shipment retry job to run every minute.
func (j *ShipmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment retry job started (running every minute)")
	return nil
}

// Stop stops the shipment retry job.
func (j *ShipmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment retry job stopped")
}

func (j *ShipmentRetryJob) run(ctx context.Context) {
	orders, err := j.unshippedHandler.Handle(ctx, queries.NewGetUnshippedOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment retry sweep failed", "error", err)
		return
	}

	for _, unshipped := range orders {
		cmd, err := commands.NewCreateShipmentCommand(unshipped.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shipment retry skipped order",
				"orderId", unshipped.ID.String(), "error", err)
			continue
		}

		result, err := j.shipmentHandler.Handle(ctx, cmd)
		if err != nil {
			// Carrier still failing; the next sweep picks the order up again.
			j.logger.WarnContext(ctx, "Shipment retry failed",
				"orderId", unshipped.ID.String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Deferred shipment provisioned",
			"orderId", unshipped.ID.String(), "trackingId", result.TrackingID)
	}
}
