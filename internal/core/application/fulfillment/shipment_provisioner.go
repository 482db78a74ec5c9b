package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ErrShipmentProvisioning wraps any carrier failure during provisioning.
// Callers treat it as recoverable: the payment stays committed and the
// shipment is retried out of band.
var ErrShipmentProvisioning = errors.New("shipment provisioning failed")

// Parcel defaults used when per-product weight and dimensions are not
// tracked.
const (
	defaultUnitWeightKg = 0.5
	defaultLengthCm     = 10
	defaultWidthCm      = 10
	defaultHeightCm     = 5

	paymentModePrepaid = "prepaid"
)

// ShipmentProvisioner wraps shipment creation, tracking id (AWB) allocation
// and pickup scheduling into one unit of work against the carrier.
//
// The provisioning flow:
//  1. Create the shipment from the order's address, items and parcel defaults.
//  2. If the carrier did not return a tracking id directly, allocate one for
//     the returned shipment handle using the default courier.
//  3. Best effort, schedule a pickup. A failure here is logged and ignored.
//  4. Derive the public tracking URL from the tracking id.
//
// The provisioner never touches order state; it only talks to the carrier
// and returns the tracking data to attach.
type ShipmentProvisioner struct {
	provider         ports.ShipmentProvider
	defaultCourierID string
	trackingURLBase  string
	logger           *slog.Logger
}

// NewShipmentProvisioner creates a provisioner.
// trackingURLBase is the public tracking page prefix the tracking id is
// appended to, e.g. "https://track.example.com/".
func NewShipmentProvisioner(
	provider ports.ShipmentProvider,
	defaultCourierID string,
	trackingURLBase string,
	logger *slog.Logger,
) (*ShipmentProvisioner, error) {
	if provider == nil {
		return nil, errors.New("shipment provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShipmentProvisioner{
		provider:         provider,
		defaultCourierID: defaultCourierID,
		trackingURLBase:  trackingURLBase,
		logger:           logger,
	}, nil
}

// Provision creates a carrier shipment for the order and returns the tracking
// data to attach. Any carrier failure on the create or allocate step is
// wrapped in ErrShipmentProvisioning; pickup scheduling failures are only
// logged.
func (p *ShipmentProvisioner) Provision(ctx context.Context, o *order.Order) (order.ShipmentInfo, error) {
	if err := o.Validate(); err != nil {
		return order.ShipmentInfo{}, err
	}

	resp, err := p.provider.CreateShipment(ctx, p.buildRequest(o))
	if err != nil {
		return order.ShipmentInfo{}, fmt.Errorf("%w: create shipment: %w", ErrShipmentProvisioning, err)
	}

	trackingID := resp.TrackingID
	courierName := resp.CourierName

	if trackingID == "" {
		if resp.ShipmentID == "" {
			return order.ShipmentInfo{}, fmt.Errorf(
				"%w: carrier returned neither tracking id nor shipment handle", ErrShipmentProvisioning)
		}

		allocation, err := p.provider.AllocateTracking(ctx, resp.ShipmentID, p.defaultCourierID)
		if err != nil {
			return order.ShipmentInfo{}, fmt.Errorf("%w: allocate tracking: %w", ErrShipmentProvisioning, err)
		}
		trackingID = allocation.TrackingID
		if allocation.CourierName != "" {
			courierName = allocation.CourierName
		}
	}

	if trackingID == "" {
		return order.ShipmentInfo{}, fmt.Errorf("%w: carrier returned empty tracking id", ErrShipmentProvisioning)
	}

	if resp.ShipmentID != "" {
		if err := p.provider.SchedulePickup(ctx, resp.ShipmentID); err != nil {
			p.logger.WarnContext(ctx, "pickup scheduling failed",
				slog.String("orderId", o.ID().String()),
				slog.String("shipmentId", resp.ShipmentID),
				slog.Any("error", err),
			)
		}
	}

	return order.NewShipmentInfo(trackingID, p.trackingURLBase+trackingID, courierName)
}

// buildRequest assembles the carrier request from the order.
// Weight scales with the total unit count; dimensions are fixed defaults.
func (p *ShipmentProvisioner) buildRequest(o *order.Order) ports.ShipmentRequest {
	units := 0
	for _, item := range o.Items() {
		units += item.Quantity()
	}
	if units == 0 {
		units = 1
	}

	return ports.ShipmentRequest{
		OrderRef:    o.ID().String(),
		Address:     o.Address(),
		Items:       o.Items(),
		Amounts:     o.Amounts(),
		PaymentMode: paymentModePrepaid,
		WeightKg:    defaultUnitWeightKg * float64(units),
		LengthCm:    defaultLengthCm,
		WidthCm:     defaultWidthCm,
		HeightCm:    defaultHeightCm,
	}
}
