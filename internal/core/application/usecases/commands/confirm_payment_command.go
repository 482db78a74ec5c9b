package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrGatewayOrderRefIsRequired = errors.New("gateway order ref is required")
	ErrPaymentRefIsRequired      = errors.New("payment ref is required")
	ErrSignatureIsRequired       = errors.New("signature is required")
)

// ConfirmPaymentCommand represents a payment gateway callback reporting a
// completed payment. It carries the gateway's order and payment references
// and the callback signature.
//
// Example:
//
//	cmd, err := NewConfirmPaymentCommand("gw_1", "pay_1", signature)
//	if err != nil {
//	    return fmt.Errorf("invalid callback data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("payment confirmation rejected: %w", err)
//	}
//	fmt.Printf("Order %s paid, tracking %s", result.OrderID, result.TrackingID)
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	gatewayOrderRef string
	paymentRef      string
	signature       string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command from a payment gateway callback.
// All three fields are required; signature authenticity is checked by the
// handler, not here.
func NewConfirmPaymentCommand(gatewayOrderRef, paymentRef, signature string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGatewayOrderRef(gatewayOrderRef),
		cmd.setPaymentRef(paymentRef),
		cmd.setSignature(signature),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// GatewayOrderRef returns the gateway's order identifier.
func (c ConfirmPaymentCommand) GatewayOrderRef() string {
	return c.gatewayOrderRef
}

// PaymentRef returns the gateway's payment identifier.
func (c ConfirmPaymentCommand) PaymentRef() string {
	return c.paymentRef
}

// Signature returns the hex-encoded callback signature.
func (c ConfirmPaymentCommand) Signature() string {
	return c.signature
}

func (c *ConfirmPaymentCommand) setGatewayOrderRef(ref string) error {
	if ref == "" {
		return ErrGatewayOrderRefIsRequired
	}

	c.gatewayOrderRef = ref
	return nil
}

func (c *ConfirmPaymentCommand) setPaymentRef(ref string) error {
	if ref == "" {
		return ErrPaymentRefIsRequired
	}

	c.paymentRef = ref
	return nil
}

func (c *ConfirmPaymentCommand) setSignature(signature string) error {
	if signature == "" {
		return ErrSignatureIsRequired
	}

	c.signature = signature
	return nil
}
