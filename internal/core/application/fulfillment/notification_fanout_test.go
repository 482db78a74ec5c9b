package fulfillment_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"storefront/internal/core/application/fulfillment"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	name  string
	err   error
	calls atomic.Int32

	gotKind ports.NotificationKind
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Notify(_ context.Context, kind ports.NotificationKind, _ *order.Order) error {
	c.calls.Add(1)
	c.gotKind = kind
	return c.err
}

func TestNotificationFanout_DispatchesToAllChannels(t *testing.T) {
	ctx := t.Context()
	o := paidOrder(t)
	email := &fakeChannel{name: "customer-email"}
	operator := &fakeChannel{name: "operator-email"}
	sms := &fakeChannel{name: "customer-sms"}

	fanout := fulfillment.NewNotificationFanout(
		[]ports.NotificationChannel{email, operator, sms}, nil)

	results := fanout.Dispatch(ctx, ports.NotificationOrderConfirmed, o)

	require.Len(t, results, 3)
	for i, name := range []string{"customer-email", "operator-email", "customer-sms"} {
		assert.Equal(t, name, results[i].Channel)
		assert.Equal(t, ports.NotificationOrderConfirmed, results[i].Kind)
		assert.True(t, results[i].Ok())
	}
	assert.Equal(t, int32(1), email.calls.Load())
	assert.Equal(t, int32(1), operator.calls.Load())
	assert.Equal(t, int32(1), sms.calls.Load())
	assert.Equal(t, ports.NotificationOrderConfirmed, email.gotKind)
}

func TestNotificationFanout_IsolatesChannelFailure(t *testing.T) {
	ctx := t.Context()
	o := paidOrder(t)
	failing := &fakeChannel{name: "customer-email", err: errors.New("smtp refused")}
	working := &fakeChannel{name: "operator-email"}

	fanout := fulfillment.NewNotificationFanout(
		[]ports.NotificationChannel{failing, working}, nil)

	results := fanout.Dispatch(ctx, ports.NotificationShipmentDispatched, o)

	require.Len(t, results, 2)
	assert.False(t, results[0].Ok())
	assert.EqualError(t, results[0].Err, "smtp refused")
	assert.True(t, results[1].Ok())
	assert.Equal(t, int32(1), working.calls.Load(), "failure of one channel must not prevent another")
}

func TestNotificationFanout_NoChannels(t *testing.T) {
	fanout := fulfillment.NewNotificationFanout(nil, nil)

	results := fanout.Dispatch(t.Context(), ports.NotificationOrderConfirmed, paidOrder(t))

	assert.Empty(t, results)
}
