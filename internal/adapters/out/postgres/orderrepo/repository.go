package orderrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Order lines are immutable
// and are not touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Omit("Items").
		Where("id = ?", dto.ID).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByGatewayRef retrieves the order carrying the given gateway order ref.
func (r *GormOrderRepository) GetByGatewayRef(ctx context.Context, gatewayOrderRef string) (*order.Order, error) {
	if gatewayOrderRef == "" {
		return nil, errs.NewValueIsRequiredError("gatewayOrderRef")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "gateway_order_ref = ?", gatewayOrderRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gatewayOrderRef", gatewayOrderRef)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusIf moves the order to the given status with a conditional
// UPDATE. A zero row count means the stored status was no longer in the
// expected set and is reported as ports.ErrStatusConflict.
func (r *GormOrderRepository) UpdateStatusIf(
	ctx context.Context,
	id kernel.UUID,
	from []order.Status,
	to order.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	fromInts := make([]int, 0, len(from))
	for _, s := range from {
		fromInts = append(fromInts, int(s))
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status IN ?", id.Bytes(), fromInts).
		Updates(map[string]any{
			"status":     int(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusConflict
	}

	return nil
}

// AttachShipment records tracking data and moves the order to Shipped with a
// conditional UPDATE keyed on the absence of a tracking id. A zero row count
// means a tracking id is already stored and is reported as
// ports.ErrShipmentExists; the stored value is never overwritten.
func (r *GormOrderRepository) AttachShipment(
	ctx context.Context,
	id kernel.UUID,
	shipment order.ShipmentInfo,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := shipment.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND (tracking_id IS NULL OR tracking_id = '')", id.Bytes()).
		Updates(map[string]any{
			"status":       int(order.Shipped),
			"tracking_id":  shipment.TrackingID(),
			"tracking_url": shipment.TrackingURL(),
			"courier_name": shipment.CourierName(),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrShipmentExists
	}

	return nil
}

// GetPaidWithoutShipment retrieves paid orders with no tracking id attached,
// oldest first. Used by the deferred-shipment retry job.
func (r *GormOrderRepository) GetPaidWithoutShipment(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	q := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND (tracking_id IS NULL OR tracking_id = '')", int(order.Paid)).
		Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
