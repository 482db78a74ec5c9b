package order

import (
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrShipmentInfoIsNotConstructed is returned when a ShipmentInfo instance
// was not created through the NewShipmentInfo factory method.
var ErrShipmentInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"ShipmentInfo must be created via NewShipmentInfo",
)

// ShipmentInfo is a value object holding the carrier data attached to an
// order once a shipment has been provisioned. A non-empty tracking id is
// the authoritative marker that provisioning happened.
type ShipmentInfo struct {
	trackingID  string
	trackingURL string
	courierName string

	guard guard.ConstructorGuard
}

// NewShipmentInfo creates shipment tracking data.
// The tracking id (AWB) is required; the tracking URL and courier name may
// be empty when the carrier has not supplied them.
func NewShipmentInfo(trackingID, trackingURL, courierName string) (ShipmentInfo, error) {
	if trackingID == "" {
		return ShipmentInfo{}, errs.NewValueIsRequiredError("trackingID")
	}

	return ShipmentInfo{
		trackingID:  trackingID,
		trackingURL: trackingURL,
		courierName: courierName,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the shipment info was created through the constructor.
func (s ShipmentInfo) Validate() error {
	return s.guard.Validate(ErrShipmentInfoIsNotConstructed)
}

// TrackingID returns the carrier-assigned tracking id (AWB).
func (s ShipmentInfo) TrackingID() string {
	return s.trackingID
}

// TrackingURL returns the public tracking page URL, possibly empty.
func (s ShipmentInfo) TrackingURL() string {
	return s.trackingURL
}

// CourierName returns the courier that carries the shipment, possibly empty.
func (s ShipmentInfo) CourierName() string {
	return s.courierName
}
