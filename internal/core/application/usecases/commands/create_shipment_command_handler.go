package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ErrOrderNotShippable indicates the order is not in a state that allows
// shipment provisioning.
var ErrOrderNotShippable = errors.New("shipments are provisioned for paid orders only")

// CreateShipmentResult is the outcome of a standalone shipment provisioning.
type CreateShipmentResult struct {
	TrackingID  string
	TrackingURL string
}

// CreateShipmentCommandHandler provisions a shipment for an already-paid
// order. It backs the deferred-shipment retry path: the payment confirmation
// committed but the carrier call failed, and this handler runs it again.
//
// The handler is idempotent. An order that already carries a tracking id
// returns the existing tracking data without touching the carrier.
type CreateShipmentCommandHandler struct {
	uowFactory  OrderUoWFactory
	provisioner ShipmentProvisioner
	notifier    NotificationDispatcher
	publisher   ports.OrderEventPublisher
	logger      *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment provisioning.
func NewCreateShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	provisioner ShipmentProvisioner,
	notifier NotificationDispatcher,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		provisioner: provisioner,
		notifier:    notifier,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle provisions and attaches a shipment for the order.
//
// Returns an error when the order does not exist, is not paid, or the
// carrier call fails. Unlike payment confirmation there is no deferred
// success here: the caller is already the retry path.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
) (CreateShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateShipmentResult{}, err
	}

	o, err := h.getOrder(ctx, cmd)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	if shipment := o.Shipment(); shipment != nil && shipment.TrackingID() != "" {
		return CreateShipmentResult{
			TrackingID:  shipment.TrackingID(),
			TrackingURL: shipment.TrackingURL(),
		}, nil
	}

	if !o.Status().IsPaidOrLater() {
		return CreateShipmentResult{}, fmt.Errorf(
			"order %s is %s: %w", o.ID().String(), o.Status(), ErrOrderNotShippable)
	}

	info, err := h.provisioner.Provision(ctx, o)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	o, err = h.attachShipment(ctx, o, info)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	if h.publisher != nil {
		if err = h.publisher.PublishOrderChanged(ctx, o); err != nil {
			h.logger.WarnContext(ctx, "order changed event not published",
				slog.String("orderId", o.ID().String()),
				slog.Any("error", err),
			)
		}
	}
	h.notifier.Dispatch(ctx, ports.NotificationShipmentDispatched, o)

	shipment := o.Shipment()
	return CreateShipmentResult{
		TrackingID:  shipment.TrackingID(),
		TrackingURL: shipment.TrackingURL(),
	}, nil
}

func (h *CreateShipmentCommandHandler) getOrder(
	ctx context.Context,
	cmd CreateShipmentCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *CreateShipmentCommandHandler) attachShipment(
	ctx context.Context,
	o *order.Order,
	info order.ShipmentInfo,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	err := repo.AttachShipment(ctx, o.ID(), info)
	if errors.Is(err, ports.ErrShipmentExists) {
		if o, err = repo.Get(ctx, o.ID()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("persist shipment: %w", err)
	} else {
		if err = o.AttachShipment(info); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
