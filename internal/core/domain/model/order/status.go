package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Paid ──> Shipped ──> Delivered
//	   │          │
//	   └──────────┴──> Cancelled
//
// The fulfillment pipeline itself only ever performs Pending/Paid -> Paid
// and Paid -> Shipped; Delivered and Cancelled are set by other flows.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout, before the
	// payment gateway has confirmed the payment.
	Pending

	// Paid indicates a verified payment confirmation was committed.
	Paid

	// Shipped indicates a carrier shipment was provisioned and a
	// tracking id attached to the order.
	Shipped

	// Delivered indicates the carrier reported delivery.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled before fulfillment.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Paid:      "paid",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Paid:      "paid",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Paid, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "unknown" for invalid status values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is a final lifecycle state
// from which no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsPaidOrLater reports whether the payment for this order has already
// been committed (Paid, Shipped or Delivered). Used to make payment
// confirmation idempotent under at-least-once callback delivery.
func (s Status) IsPaidOrLater() bool {
	return s == Paid || s == Shipped || s == Delivered
}

// ValidatePay checks if the status allows the payment-confirmation
// transition without performing it.
//
// Valid statuses:
//   - Pending (first confirmation)
//   - Paid, Shipped, Delivered (repeated callback delivery is a no-op)
//
// Invalid statuses:
//   - Cancelled (terminal; the confirmation is rejected)
//   - Unknown (invalid status)
func (s Status) ValidatePay() error {
	if s != Pending && !s.IsPaidOrLater() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm a payment", s.String()),
		)
	}
	return nil
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Pending -> Paid (first confirmation)
//   - Paid/Shipped/Delivered -> unchanged (repeated callback delivery)
//
// Returns:
//   - (new status, nil) on valid transition
//   - (0, error) if confirmation is not allowed from the current status
func (s Status) Pay() (Status, error) {
	if err := s.ValidatePay(); err != nil {
		return 0, err
	}
	if s.IsPaidOrLater() {
		return s, nil
	}
	return Paid, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Paid -> Shipped (shipment provisioned)
//
// All other transitions are invalid: a shipment may only be attached to
// an order whose payment has been committed and which has not shipped yet.
func (s Status) Ship() (Status, error) {
	if s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}
	return Shipped, nil
}
