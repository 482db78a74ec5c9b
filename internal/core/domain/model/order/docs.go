// Package order provides domain entities and business logic for order management
// in the storefront. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, amounts and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Amounts, Address, Item, ShipmentInfo: Value objects carried by the aggregate
//
// Key business rules:
//   - Orders must have a valid unique identifier, a gateway order reference,
//     consistent amounts and at least one item
//   - Order status follows a defined workflow: pending -> paid -> shipped -> delivered,
//     with cancelled as an alternate terminal state
//   - Payment confirmation is idempotent: confirming an already-paid order is a no-op
//   - A shipment is attached at most once; an existing tracking id is never overwritten
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
