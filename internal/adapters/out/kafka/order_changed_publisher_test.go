package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

type fakeWriter struct {
	messages []skafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func paidOrder(t *testing.T, shipment *order.ShipmentInfo) *order.Order {
	t.Helper()

	amounts, err := order.NewAmounts(500, 50)
	require.NoError(t, err)
	address, err := order.NewAddress("Jane Doe", "jane@example.com", "+15550100", "1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	item, err := order.NewItem("sku-1", "Widget", 250, 2)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "gw_1", amounts, address, []order.Item{item})
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid())
	if shipment != nil {
		require.NoError(t, o.AttachShipment(*shipment))
	}
	return o
}

func TestOrderChangedPublisher(t *testing.T) {
	t.Run("publishes paid order keyed by id", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := NewOrderChangedPublisherWithWriter(writer)
		o := paidOrder(t, nil)

		err := publisher.PublishOrderChanged(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, writer.messages, 1)
		assert.Equal(t, o.ID().String(), string(writer.messages[0].Key))

		var event map[string]any
		require.NoError(t, json.Unmarshal(writer.messages[0].Value, &event))
		assert.Equal(t, o.ID().String(), event["orderId"])
		assert.Equal(t, "gw_1", event["gatewayOrderRef"])
		assert.Equal(t, "paid", event["status"])
		assert.NotContains(t, event, "trackingId")
		assert.NotEmpty(t, event["occurredAt"])
	})

	t.Run("includes shipment fields for shipped order", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := NewOrderChangedPublisherWithWriter(writer)
		info, err := order.NewShipmentInfo("AWB123", "https://track.example.com/AWB123", "LogiShip")
		require.NoError(t, err)
		o := paidOrder(t, &info)

		require.NoError(t, publisher.PublishOrderChanged(context.Background(), o))

		var event map[string]any
		require.NoError(t, json.Unmarshal(writer.messages[0].Value, &event))
		assert.Equal(t, "shipped", event["status"])
		assert.Equal(t, "AWB123", event["trackingId"])
		assert.Equal(t, "https://track.example.com/AWB123", event["trackingUrl"])
		assert.Equal(t, "LogiShip", event["courierName"])
	})

	t.Run("propagates writer error", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("broker unavailable")}
		publisher := NewOrderChangedPublisherWithWriter(writer)

		err := publisher.PublishOrderChanged(context.Background(), paidOrder(t, nil))

		assert.ErrorContains(t, err, "broker unavailable")
	})

	t.Run("close closes writer", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := NewOrderChangedPublisherWithWriter(writer)

		require.NoError(t, publisher.Close())
		assert.True(t, writer.closed)
	})
}
