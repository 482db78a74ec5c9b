// Package kafka publishes order change events to a Kafka topic for
// downstream consumers (analytics, warehouse sync).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	skafka "github.com/segmentio/kafka-go"

	"storefront/internal/core/domain/model/order"
)

// Writer abstracts the kafka-go writer so tests can substitute a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// OrderChangedPublisher emits one message per order state change, keyed by
// order id so per-order ordering is preserved within a partition.
type OrderChangedPublisher struct {
	writer Writer
}

type orderChangedEvent struct {
	OrderID         string `json:"orderId"`
	GatewayOrderRef string `json:"gatewayOrderRef"`
	Status          string `json:"status"`
	TrackingID      string `json:"trackingId,omitempty"`
	TrackingURL     string `json:"trackingUrl,omitempty"`
	CourierName     string `json:"courierName,omitempty"`
	OccurredAt      string `json:"occurredAt"`
}

// NewOrderChangedPublisher connects a publisher to the given broker and topic.
func NewOrderChangedPublisher(broker, topic string) *OrderChangedPublisher {
	writer := &skafka.Writer{
		Addr:     skafka.TCP(broker),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &OrderChangedPublisher{writer: writer}
}

// NewOrderChangedPublisherWithWriter wires an existing writer, used in tests.
func NewOrderChangedPublisherWithWriter(writer Writer) *OrderChangedPublisher {
	return &OrderChangedPublisher{writer: writer}
}

// PublishOrderChanged serializes the order's current state and writes it to
// the topic.
func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	event := orderChangedEvent{
		OrderID:         o.ID().String(),
		GatewayOrderRef: o.GatewayOrderRef(),
		Status:          o.Status().String(),
		OccurredAt:      o.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if shipment := o.Shipment(); shipment != nil {
		event.TrackingID = shipment.TrackingID()
		event.TrackingURL = shipment.TrackingURL()
		event.CourierName = shipment.CourierName()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	message := skafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish order changed event: %w", err)
	}
	return nil
}

// Close releases the underlying writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
