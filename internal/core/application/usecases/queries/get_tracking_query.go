// Package queries contains read-only operations for order data.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// domain aggregates.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the shipment tracking state of a single order.
//
// Example:
//
//	query, err := NewGetTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	tracking, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get tracking: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", tracking.ID, tracking.Status)
type GetTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for the given order.
func NewGetTrackingQuery(orderID kernel.UUID) (GetTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderID returns the order to look up.
func (q GetTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetTrackingQueryResponse represents an order's shipment tracking state.
// Tracking fields are empty until a shipment has been provisioned.
type GetTrackingQueryResponse struct {
	ID          kernel.UUID
	Status      string
	TrackingID  string
	TrackingURL string
	CourierName string
}
