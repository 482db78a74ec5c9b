package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// ConfirmPaymentResult is the outcome of a payment confirmation.
//
// A result with a non-nil ShipmentErr still means the payment was committed:
// the order is paid but shipment provisioning failed and will be retried out
// of band.
type ConfirmPaymentResult struct {
	OrderID     kernel.UUID
	TrackingID  string
	TrackingURL string
	ShipmentErr error
}

// ShipmentDeferred reports whether shipment provisioning was deferred.
func (r ConfirmPaymentResult) ShipmentDeferred() bool {
	return r.ShipmentErr != nil
}

// ConfirmPaymentCommandHandler orchestrates the post-payment fulfillment
// pipeline: signature verification, the atomic paid transition, idempotent
// shipment provisioning and best-effort notification fan-out.
//
// Ordering matters: the paid transition commits before any carrier or
// notification call, and once committed it is never rolled back. Failures
// after that point only degrade the result, they never fail the confirmation.
type ConfirmPaymentCommandHandler struct {
	uowFactory  OrderUoWFactory
	verifier    services.SignatureVerifier
	provisioner ShipmentProvisioner
	notifier    NotificationDispatcher
	publisher   ports.OrderEventPublisher
	logger      *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	verifier services.SignatureVerifier,
	provisioner ShipmentProvisioner,
	notifier NotificationDispatcher,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ConfirmPaymentCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		provisioner: provisioner,
		notifier:    notifier,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes a payment gateway callback.
//
// Returns an error when the callback is rejected: invalid signature, missing
// secret, unknown gateway order ref, or a cancelled order. Once the paid
// transition commits, Handle returns a successful result even if shipment
// provisioning fails; the result then carries ShipmentErr.
func (h *ConfirmPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmPaymentCommand,
) (ConfirmPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	// Authenticate before touching any order state.
	if err := h.verifier.Verify(cmd.GatewayOrderRef(), cmd.PaymentRef(), cmd.Signature()); err != nil {
		return ConfirmPaymentResult{}, err
	}

	o, err := h.markPaid(ctx, cmd.GatewayOrderRef())
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	h.publishChanged(ctx, o)
	h.notifier.Dispatch(ctx, ports.NotificationOrderConfirmed, o)

	// Idempotency guard: an existing tracking id means a previous delivery of
	// this callback already provisioned the shipment.
	if o.HasShipment() {
		h.notifier.Dispatch(ctx, ports.NotificationShipmentDispatched, o)
		return h.successResult(o), nil
	}

	info, err := h.provisioner.Provision(ctx, o)
	if err != nil {
		h.logger.WarnContext(ctx, "shipment provisioning deferred",
			slog.String("orderId", o.ID().String()),
			slog.Any("error", err),
		)
		return ConfirmPaymentResult{OrderID: o.ID(), ShipmentErr: err}, nil
	}

	o, err = h.attachShipment(ctx, o, info)
	if err != nil {
		h.logger.WarnContext(ctx, "shipment attach deferred",
			slog.String("orderId", o.ID().String()),
			slog.String("trackingId", info.TrackingID()),
			slog.Any("error", err),
		)
		return ConfirmPaymentResult{OrderID: o.ID(), ShipmentErr: err}, nil
	}

	h.publishChanged(ctx, o)
	h.notifier.Dispatch(ctx, ports.NotificationShipmentDispatched, o)

	return h.successResult(o), nil
}

// markPaid loads the order by gateway ref and commits the paid transition.
// The status update is conditional at the storage level, so a concurrent
// delivery of the same callback cannot double-apply it.
func (h *ConfirmPaymentCommandHandler) markPaid(
	ctx context.Context,
	gatewayOrderRef string,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetByGatewayRef(ctx, gatewayOrderRef)
	if err != nil {
		return nil, err
	}

	wasPending := o.Status() == order.Pending
	if err = o.MarkPaid(); err != nil {
		return nil, err
	}

	if wasPending {
		err = repo.UpdateStatusIf(ctx, o.ID(), []order.Status{order.Pending}, order.Paid)
		if errors.Is(err, ports.ErrStatusConflict) {
			// A concurrent confirmation won the conditional write. Re-read to
			// see where the order ended up.
			if o, err = repo.Get(ctx, o.ID()); err != nil {
				return nil, err
			}
			if o.Status() == order.Cancelled {
				return nil, order.ErrOrderNotConfirmable
			}
		} else if err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// attachShipment commits tracking data to the order. The write is conditional
// on no tracking id being stored; if a concurrent confirmation attached one
// first, the stored shipment wins and is returned.
func (h *ConfirmPaymentCommandHandler) attachShipment(
	ctx context.Context,
	o *order.Order,
	info order.ShipmentInfo,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return o, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	err := repo.AttachShipment(ctx, o.ID(), info)
	if errors.Is(err, ports.ErrShipmentExists) {
		if o, err = repo.Get(ctx, o.ID()); err != nil {
			return o, err
		}
	} else if err != nil {
		return o, fmt.Errorf("persist shipment: %w", err)
	} else {
		if err = o.AttachShipment(info); err != nil {
			return o, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return o, err
	}

	return o, nil
}

// publishChanged emits the order-changed integration event. Publishing is
// best effort and never affects the confirmation outcome.
func (h *ConfirmPaymentCommandHandler) publishChanged(ctx context.Context, o *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, o); err != nil {
		h.logger.WarnContext(ctx, "order changed event not published",
			slog.String("orderId", o.ID().String()),
			slog.Any("error", err),
		)
	}
}

func (h *ConfirmPaymentCommandHandler) successResult(o *order.Order) ConfirmPaymentResult {
	result := ConfirmPaymentResult{OrderID: o.ID()}
	if shipment := o.Shipment(); shipment != nil {
		result.TrackingID = shipment.TrackingID()
		result.TrackingURL = shipment.TrackingURL()
	}
	return result
}
