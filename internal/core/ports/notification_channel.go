package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// NotificationKind identifies which event a notification announces.
type NotificationKind string

const (
	// NotificationOrderConfirmed announces a committed payment.
	NotificationOrderConfirmed NotificationKind = "order-confirmed"

	// NotificationShipmentDispatched announces an attached shipment with
	// tracking data.
	NotificationShipmentDispatched NotificationKind = "shipment-dispatched"
)

// NotificationChannel is one outbound delivery mechanism for order
// notifications. Implementations must be safe for concurrent use.
type NotificationChannel interface {
	// Name identifies the channel in dispatch results and logs,
	// e.g. "customer-email" or "operator-email".
	Name() string

	// Notify builds and sends this channel's message for the order and
	// notification kind. A failure affects only this channel.
	Notify(ctx context.Context, kind NotificationKind, o *order.Order) error
}
