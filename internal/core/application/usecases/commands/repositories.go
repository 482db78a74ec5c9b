// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/application/fulfillment"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Collaborator interfaces let the handlers depend on the fulfillment
// services and event publisher without binding to concrete types.
type (
	// ShipmentProvisioner provisions a carrier shipment for a paid order.
	ShipmentProvisioner interface {
		Provision(ctx context.Context, o *order.Order) (order.ShipmentInfo, error)
	}

	// NotificationDispatcher fans a notification out to all configured
	// channels. It never fails; per-channel outcomes are in the results.
	NotificationDispatcher interface {
		Dispatch(ctx context.Context, kind ports.NotificationKind, o *order.Order) []fulfillment.DispatchResult
	}
)
