package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler
	createShipmentHandler commands.CreateShipmentCommandHandler

	// Query handlers
	getTrackingHandler queries.GetTrackingQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
) *Server {
	return &Server{
		confirmPaymentHandler: confirmPaymentHandler,
		createShipmentHandler: createShipmentHandler,
		getTrackingHandler:    getTrackingHandler,
	}
}

// ConfirmPayment handles POST /api/v1/payments/confirm - processes a payment
// gateway notification.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var notification servers.PaymentNotification
	if err := ctx.Bind(&notification); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewConfirmPaymentCommand(
		notification.GatewayOrderRef,
		notification.GatewayPaymentRef,
		notification.Signature,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid payment notification: " + err.Error(),
		})
	}

	result, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return confirmPaymentError(ctx, err)
	}

	response := servers.PaymentConfirmation{
		OrderId:          result.OrderID.Bytes(),
		Status:           order.Paid.String(),
		ShipmentDeferred: result.ShipmentDeferred(),
	}
	if result.ShipmentDeferred() {
		message := result.ShipmentErr.Error()
		response.ShipmentError = &message
	} else {
		response.Status = order.Shipped.String()
		response.TrackingId = &result.TrackingID
		response.TrackingUrl = &result.TrackingURL
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrderShipment handles POST /api/v1/orders/{orderId}/shipment -
// provisions a shipment for a paid order.
func (s *Server) CreateOrderShipment(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewCreateShipmentCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	result, err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, commands.ErrOrderNotShippable):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case err != nil:
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to provision shipment",
		})
	}

	return ctx.JSON(http.StatusOK, servers.Shipment{
		TrackingId:  result.TrackingID,
		TrackingUrl: result.TrackingURL,
	})
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking - retrieves
// shipment tracking state for an order.
func (s *Server) GetOrderTracking(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetTrackingQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	tracking, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve tracking",
		})
	}

	response := servers.Tracking{
		OrderId: tracking.ID.Bytes(),
		Status:  tracking.Status,
	}
	if tracking.TrackingID != "" {
		response.TrackingId = &tracking.TrackingID
		response.TrackingUrl = &tracking.TrackingURL
		response.CourierName = &tracking.CourierName
	}

	return ctx.JSON(http.StatusOK, response)
}

// confirmPaymentError maps confirmation failures to HTTP statuses. Signature
// failures are unauthorized, unknown orders are not found, cancelled orders
// conflict, and a missing gateway secret is a server-side configuration error.
func confirmPaymentError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		return ctx.JSON(http.StatusUnauthorized, servers.Error{
			Code:    http.StatusUnauthorized,
			Message: "Signature verification failed",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrOrderNotConfirmable):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "Order is not confirmable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to confirm payment",
		})
	}
}
