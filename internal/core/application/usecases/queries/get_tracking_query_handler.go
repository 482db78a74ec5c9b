package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler reads an order's tracking state from the database.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns an ObjectNotFoundError when no order has the given id.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			tracking_id,
			tracking_url,
			courier_name
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var id uuid.UUID
	var status int
	var resp GetTrackingQueryResponse

	err := row.Scan(&id, &status, &resp.TrackingID, &resp.TrackingURL, &resp.CourierName)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	resp.ID = orderID
	resp.Status = order.Status(status).String()
	return resp, nil
}
