package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNotConfirmable is returned when a payment confirmation arrives for an
	// order in a terminal state such as cancelled. The confirmation is rejected and
	// no state is mutated.
	ErrOrderNotConfirmable = errors.New("order is in a terminal state and cannot accept a payment confirmation")

	// ErrShipmentAlreadyAttached is returned when a shipment attach is attempted on an
	// order that already carries a tracking id. An existing tracking id is never overwritten.
	ErrShipmentAlreadyAttached = errors.New("order already has a shipment attached")
)

// Order represents a checkout transaction in the storefront. It is the aggregate
// root that manages the order lifecycle from payment confirmation through shipment.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty gateway order reference
//   - Amounts are consistent (total = subtotal + shipping, all non-negative)
//   - Must carry at least one item; items are immutable after creation
//   - Status transitions follow defined business rules (see Status)
//   - A shipment is attached at most once; the tracking id is never overwritten
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// gatewayOrderRef is the payment gateway's order identifier, assigned at
	// order creation and used to locate the order during payment confirmation
	gatewayOrderRef string

	// amounts is the monetary breakdown charged to the buyer
	amounts Amounts

	// address is the recipient and destination of the order
	address Address

	// items is the immutable list of order lines
	items []Item

	// status is the current state in the order lifecycle
	status Status

	// shipment holds carrier tracking data (nil until a shipment is provisioned)
	shipment *ShipmentInfo

	// createdAt and updatedAt track the order's persistence timestamps
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the way
// the checkout flow creates orders; the fulfillment pipeline only ever restores them.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - gatewayOrderRef: Payment gateway order reference (required, unique per order)
//   - amounts: Validated monetary breakdown
//   - address: Validated recipient address
//   - items: At least one validated order line
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	gatewayOrderRef string,
	amounts Amounts,
	address Address,
	items []Item,
) (*Order, error) {
	now := time.Now().UTC()
	return RestoreOrder(id, gatewayOrderRef, amounts, address, items, Pending, nil, now, now)
}

// RestoreOrder reconstructs an Order from persistence, re-validating every
// component so that invalid rows cannot produce an invalid aggregate.
func RestoreOrder(
	id kernel.UUID,
	gatewayOrderRef string,
	amounts Amounts,
	address Address,
	items []Item,
	status Status,
	shipment *ShipmentInfo,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        status,
		shipment:      shipment,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setGatewayOrderRef(gatewayOrderRef),
		order.setAmounts(amounts),
		order.setAddress(address),
		order.setItems(items),
		status.Validate(),
		validateShipment(shipment),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory
// method. This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// GatewayOrderRef returns the payment gateway's order reference.
func (o *Order) GatewayOrderRef() string {
	return o.gatewayOrderRef
}

// Amounts returns the monetary breakdown of the order.
func (o *Order) Amounts() Amounts {
	return o.amounts
}

// Address returns the recipient address of the order.
func (o *Order) Address() Address {
	return o.address
}

// Items returns a copy of the order lines, preserving their immutability.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Shipment returns the attached shipment tracking data.
// Returns nil if no shipment has been provisioned.
func (o *Order) Shipment() *ShipmentInfo {
	return o.shipment
}

// HasShipment reports whether a shipment with a non-empty tracking id has
// been attached. This is the authoritative at-most-once provisioning guard.
func (o *Order) HasShipment() bool {
	return o.shipment != nil && o.shipment.TrackingID() != ""
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// MarkPaid records a verified payment confirmation on the order.
//
// This method enforces the following business rules:
//   - A pending order transitions to Paid
//   - An order that is already Paid, Shipped or Delivered is left unchanged,
//     so repeated callback delivery does not error
//   - A cancelled order rejects the confirmation with ErrOrderNotConfirmable
//
// Returns nil on success (including the idempotent no-op case).
func (o *Order) MarkPaid() error {
	if o.status == Cancelled {
		return ErrOrderNotConfirmable
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	if newStatus != o.status {
		o.status = newStatus
		o.updatedAt = time.Now().UTC()
	}
	return nil
}

// AttachShipment records provisioned carrier tracking data and transitions
// the order to Shipped.
//
// This method enforces the following business rules:
//   - The order must be in Paid status
//   - The order must not already carry a tracking id (at-most-once provisioning)
//
// Returns ErrShipmentAlreadyAttached if a tracking id exists, or a status
// error if the order has not been paid.
func (o *Order) AttachShipment(info ShipmentInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if o.HasShipment() {
		return ErrShipmentAlreadyAttached
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.shipment = &info
	o.updatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setGatewayOrderRef validates and sets the gateway order reference.
func (o *Order) setGatewayOrderRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("gatewayOrderRef")
	}
	o.gatewayOrderRef = ref
	return nil
}

// setAmounts validates and sets the order's monetary breakdown.
func (o *Order) setAmounts(amounts Amounts) error {
	if err := amounts.Validate(); err != nil {
		return err
	}
	o.amounts = amounts
	return nil
}

// setAddress validates and sets the order's recipient address.
func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

// setItems validates and sets the order lines. At least one item is required.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// validateShipment validates optional shipment data during restoration.
func validateShipment(shipment *ShipmentInfo) error {
	if shipment == nil {
		return nil
	}
	return shipment.Validate()
}
