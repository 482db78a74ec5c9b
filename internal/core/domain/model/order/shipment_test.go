package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipmentInfo(t *testing.T) {
	t.Run("should create valid shipment info", func(t *testing.T) {
		info, err := order.NewShipmentInfo("AWB123", "https://track.example.com/AWB123", "LogiShip")

		require.NoError(t, err)
		require.NoError(t, info.Validate())
		assert.Equal(t, "AWB123", info.TrackingID())
		assert.Equal(t, "https://track.example.com/AWB123", info.TrackingURL())
		assert.Equal(t, "LogiShip", info.CourierName())
	})

	t.Run("should allow empty tracking url and courier", func(t *testing.T) {
		info, err := order.NewShipmentInfo("AWB123", "", "")

		require.NoError(t, err)
		assert.Equal(t, "", info.TrackingURL())
		assert.Equal(t, "", info.CourierName())
	})

	t.Run("should reject empty tracking id", func(t *testing.T) {
		_, err := order.NewShipmentInfo("", "https://track.example.com/x", "LogiShip")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "trackingID")
	})
}

func TestShipmentInfoValidate(t *testing.T) {
	t.Run("should fail for directly instantiated shipment info", func(t *testing.T) {
		var info order.ShipmentInfo

		err := info.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ShipmentInfo must be created")
	})
}
