package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Paid, order.Shipped, order.Delivered, order.Cancelled} {
			assert.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(42).Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "42 is not a valid status")
	})
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.Unknown, "unknown"},
		{order.Pending, "pending"},
		{order.Paid, "paid"},
		{order.Shipped, "shipped"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Status(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Paid.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
}

func TestStatusPay(t *testing.T) {
	t.Run("should transition pending to paid", func(t *testing.T) {
		newStatus, err := order.Pending.Pay()

		require.NoError(t, err)
		assert.Equal(t, order.Paid, newStatus)
	})

	t.Run("should keep status for repeated confirmation", func(t *testing.T) {
		for _, s := range []order.Status{order.Paid, order.Shipped, order.Delivered} {
			newStatus, err := s.Pay()

			require.NoError(t, err)
			assert.Equal(t, s, newStatus, "repeated confirmation should not move %s", s)
		}
	})

	t.Run("should reject confirmation of cancelled order", func(t *testing.T) {
		newStatus, err := order.Cancelled.Pay()

		require.Error(t, err)
		assert.Equal(t, order.Status(0), newStatus)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "cancelled is not a valid status to confirm a payment")
	})

	t.Run("should reject confirmation from unknown status", func(t *testing.T) {
		_, err := order.Unknown.Pay()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestStatusShip(t *testing.T) {
	t.Run("should transition paid to shipped", func(t *testing.T) {
		newStatus, err := order.Paid.Ship()

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, newStatus)
	})

	t.Run("should reject shipping from any other status", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Pending, order.Shipped, order.Delivered, order.Cancelled} {
			newStatus, err := s.Ship()

			require.Error(t, err, "shipping from %s should fail", s)
			assert.Equal(t, order.Status(0), newStatus)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}
