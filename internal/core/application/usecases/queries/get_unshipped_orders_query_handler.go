package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnshippedOrdersQueryHandler retrieves paid orders awaiting shipment from
// the database. Gives the retry job and operators visibility into deferred
// provisioning backlog.
type GetUnshippedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnshippedOrdersQueryHandler creates a handler for deferred shipment queries.
// Requires a GORM database connection for query execution.
func NewGetUnshippedOrdersQueryHandler(db *gorm.DB) GetUnshippedOrdersQueryHandler {
	return GetUnshippedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all paid orders without a tracking id.
// Results are sorted oldest first so the longest-waiting orders surface on top.
func (h GetUnshippedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnshippedOrdersQuery,
) ([]GetUnshippedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnshippedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			gateway_order_ref,
			total,
			created_at
		FROM orders
		WHERE status = ? AND (tracking_id IS NULL OR tracking_id = '')
		ORDER BY created_at
	`, int(order.Paid)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnshippedOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.GatewayOrderRef,
			&resp.Total,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
