package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

type emailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type smsJob struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// CustomerEmailChannel enqueues order emails addressed to the recipient
// of the order.
type CustomerEmailChannel struct {
	publisher QueuePublisher
	queue     string
}

func NewCustomerEmailChannel(publisher QueuePublisher, queue string) *CustomerEmailChannel {
	return &CustomerEmailChannel{publisher: publisher, queue: queue}
}

func (c *CustomerEmailChannel) Name() string {
	return "customer-email"
}

func (c *CustomerEmailChannel) Notify(ctx context.Context, kind ports.NotificationKind, o *order.Order) error {
	subject, body, err := customerEmailContent(kind, o)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(emailJob{
		To:      o.Address().Email(),
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return c.publisher.Publish(ctx, c.queue, payload)
}

// OperatorEmailChannel enqueues fulfillment alerts for the store operator.
type OperatorEmailChannel struct {
	publisher    QueuePublisher
	queue        string
	operatorAddr string
}

func NewOperatorEmailChannel(publisher QueuePublisher, queue, operatorAddr string) *OperatorEmailChannel {
	return &OperatorEmailChannel{publisher: publisher, queue: queue, operatorAddr: operatorAddr}
}

func (c *OperatorEmailChannel) Name() string {
	return "operator-email"
}

func (c *OperatorEmailChannel) Notify(ctx context.Context, kind ports.NotificationKind, o *order.Order) error {
	var subject, body string
	switch kind {
	case ports.NotificationOrderConfirmed:
		subject = fmt.Sprintf("New paid order %s", o.GatewayOrderRef())
		body = fmt.Sprintf("Order %s was paid, total %.2f. Shipment provisioning has started.",
			o.GatewayOrderRef(), o.Amounts().Total())
	case ports.NotificationShipmentDispatched:
		subject = fmt.Sprintf("Order %s dispatched", o.GatewayOrderRef())
		body = fmt.Sprintf("Order %s left the warehouse. Tracking: %s.",
			o.GatewayOrderRef(), trackingLine(o))
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	payload, err := json.Marshal(emailJob{To: c.operatorAddr, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	return c.publisher.Publish(ctx, c.queue, payload)
}

// CustomerSMSChannel enqueues short status texts to the recipient's phone.
type CustomerSMSChannel struct {
	publisher QueuePublisher
	queue     string
}

func NewCustomerSMSChannel(publisher QueuePublisher, queue string) *CustomerSMSChannel {
	return &CustomerSMSChannel{publisher: publisher, queue: queue}
}

func (c *CustomerSMSChannel) Name() string {
	return "customer-sms"
}

func (c *CustomerSMSChannel) Notify(ctx context.Context, kind ports.NotificationKind, o *order.Order) error {
	var message string
	switch kind {
	case ports.NotificationOrderConfirmed:
		message = fmt.Sprintf("Your order %s is confirmed. We will text you when it ships.", o.GatewayOrderRef())
	case ports.NotificationShipmentDispatched:
		message = fmt.Sprintf("Your order %s has shipped. Track it: %s", o.GatewayOrderRef(), trackingLine(o))
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	payload, err := json.Marshal(smsJob{To: o.Address().Phone(), Message: message})
	if err != nil {
		return err
	}
	return c.publisher.Publish(ctx, c.queue, payload)
}

func customerEmailContent(kind ports.NotificationKind, o *order.Order) (subject, body string, err error) {
	switch kind {
	case ports.NotificationOrderConfirmed:
		subject = fmt.Sprintf("Order %s confirmed", o.GatewayOrderRef())
		body = fmt.Sprintf("Hi %s,\n\nWe received your payment for order %s (total %.2f). "+
			"We are preparing your shipment and will email you the tracking link shortly.",
			o.Address().RecipientName(), o.GatewayOrderRef(), o.Amounts().Total())
	case ports.NotificationShipmentDispatched:
		subject = fmt.Sprintf("Order %s is on its way", o.GatewayOrderRef())
		body = fmt.Sprintf("Hi %s,\n\nYour order %s has been handed to the courier. Tracking: %s",
			o.Address().RecipientName(), o.GatewayOrderRef(), trackingLine(o))
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}
	return subject, body, nil
}

func trackingLine(o *order.Order) string {
	shipment := o.Shipment()
	if shipment == nil {
		return "not yet available"
	}
	return fmt.Sprintf("%s (%s)", shipment.TrackingID(), shipment.TrackingURL())
}
