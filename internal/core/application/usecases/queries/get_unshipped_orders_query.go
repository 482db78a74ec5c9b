package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetUnshippedOrdersQueryIsNotConstructed = errors.New(
	"GetUnshippedOrdersQuery must be created via NewGetUnshippedOrdersQuery constructor",
)

// GetUnshippedOrdersQuery retrieves paid orders with no shipment attached.
// These are the orders whose shipment provisioning was deferred and is
// waiting for a retry.
type GetUnshippedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnshippedOrdersQuery creates a query to retrieve deferred shipments.
// This is a parameterless query.
func NewGetUnshippedOrdersQuery() GetUnshippedOrdersQuery {
	return GetUnshippedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnshippedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnshippedOrdersQueryIsNotConstructed)
}

// GetUnshippedOrdersQueryResponse represents one paid order awaiting a
// shipment.
type GetUnshippedOrdersQueryResponse struct {
	ID              kernel.UUID
	GatewayOrderRef string
	Total           float64
	CreatedAt       time.Time
}
