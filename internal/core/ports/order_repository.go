package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

var (
	// ErrStatusConflict is returned by UpdateStatusIf when the stored order
	// was no longer in any of the expected statuses, meaning a concurrent
	// writer moved it first.
	ErrStatusConflict = errors.New("order status changed concurrently")

	// ErrShipmentExists is returned by AttachShipment when the stored order
	// already carries a tracking id. The existing shipment is left untouched.
	ErrShipmentExists = errors.New("order already has a shipment in storage")
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it exposes the two conditional writes the payment
// confirmation pipeline relies on for idempotency under concurrent
// callback delivery.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByGatewayRef retrieves the order carrying the given payment gateway
	// order reference. Used to locate the order a payment callback refers to.
	GetByGatewayRef(ctx context.Context, gatewayOrderRef string) (*order.Order, error)

	// UpdateStatusIf moves the order to the given status only if its stored
	// status is currently one of the expected ones. The write is conditional
	// at the storage level, so exactly one of two concurrent callers wins.
	// Returns ErrStatusConflict when the condition did not hold.
	UpdateStatusIf(ctx context.Context, id kernel.UUID, from []order.Status, to order.Status) error

	// AttachShipment records shipment tracking data and moves the order to
	// Shipped, only if no tracking id is stored yet. Returns
	// ErrShipmentExists when the order already has one.
	AttachShipment(ctx context.Context, id kernel.UUID, shipment order.ShipmentInfo) error

	// GetPaidWithoutShipment retrieves paid orders that have no shipment
	// attached. Used by the retry job to pick up deferred shipments.
	GetPaidWithoutShipment(ctx context.Context, limit int) ([]*order.Order, error)
}
