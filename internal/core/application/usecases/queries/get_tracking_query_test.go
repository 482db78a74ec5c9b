package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTrackingQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetTrackingQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(id))
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetTrackingQuery(invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var query queries.GetTrackingQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetTrackingQueryIsNotConstructed)
	})
}

func TestNewGetUnshippedOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query := queries.NewGetUnshippedOrdersQuery()

		require.NoError(t, query.Validate())
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var query queries.GetUnshippedOrdersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetUnshippedOrdersQueryIsNotConstructed)
	})
}
