package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderEventPublisher publishes integration events about order state changes
// to the message bus. Publishing is best effort from the caller's point of
// view: a publish failure never rolls back the state change it announces.
type OrderEventPublisher interface {
	// PublishOrderChanged emits an event describing the order's current state.
	PublishOrderChanged(ctx context.Context, o *order.Order) error
}
