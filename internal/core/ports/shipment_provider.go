package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// ShipmentRequest carries everything the carrier needs to create a shipment
// for an order.
type ShipmentRequest struct {
	// OrderRef is the storefront order identifier, used as the carrier-side
	// order reference so retries map to the same carrier record.
	OrderRef string

	Address order.Address
	Items   []order.Item
	Amounts order.Amounts

	// PaymentMode is the carrier payment mode. The storefront only supports
	// pre-paid orders.
	PaymentMode string

	// WeightKg and the dimensions describe the parcel.
	WeightKg float64
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// ShipmentResponse is the carrier's answer to a shipment creation.
// TrackingID may be empty when the carrier created the shipment but has not
// assigned an AWB yet; ShipmentID then identifies the shipment for a
// follow-up allocation call.
type ShipmentResponse struct {
	ShipmentID  string
	TrackingID  string
	CourierName string
}

// TrackingAllocation is the carrier's answer to a tracking id allocation.
type TrackingAllocation struct {
	TrackingID  string
	CourierName string
}

// ShipmentProvider is the outbound port to the shipping carrier.
type ShipmentProvider interface {
	// CreateShipment registers a shipment with the carrier.
	CreateShipment(ctx context.Context, req ShipmentRequest) (ShipmentResponse, error)

	// AllocateTracking requests an AWB for a shipment that was created
	// without one, using the given courier.
	AllocateTracking(ctx context.Context, shipmentID, courierID string) (TrackingAllocation, error)

	// SchedulePickup asks the carrier to schedule a pickup for the shipment.
	// Failures here do not invalidate the shipment itself.
	SchedulePickup(ctx context.Context, shipmentID string) error
}
