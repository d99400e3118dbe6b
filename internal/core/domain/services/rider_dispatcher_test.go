package services_test

import (
	"testing"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/core/domain/services"
	"stockway/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRiderAt(t *testing.T, warehouseID kernel.UUID, location *kernel.GeoPoint) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), warehouseID)
	require.NoError(t, err)
	if location != nil {
		require.NoError(t, r.UpdateLocation(*location))
	}
	return r
}

func newLeg(t *testing.T, warehouseID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), warehouseID)
	require.NoError(t, err)
	return d
}

func TestRiderDispatcher_Dispatch(t *testing.T) {
	warehouseID := kernel.NewUUID()
	warehouseLocation := point(t, 24.8607, 67.0011)

	t.Run("should assign the nearest available rider", func(t *testing.T) {
		far := newRiderAt(t, warehouseID, point(t, 24.95, 67.10))
		near := newRiderAt(t, warehouseID, point(t, 24.87, 67.00))
		busy := newRiderAt(t, warehouseID, point(t, 24.8607, 67.0011))
		require.NoError(t, busy.MarkBusy())
		leg := newLeg(t, warehouseID)

		assigned, err := services.NewRiderDispatcher(50).Dispatch(leg, warehouseLocation, []*rider.Rider{far, busy, near})

		require.NoError(t, err)
		assert.Equal(t, near.ID(), assigned.ID())
		assert.Equal(t, rider.Busy, near.Status())
		assert.Equal(t, rider.Available, far.Status())
		assert.True(t, leg.IsAssignedTo(near.ID()))
		assert.Equal(t, delivery.Assigned, leg.Status())
	})

	t.Run("should break distance ties by rider id", func(t *testing.T) {
		a := newRiderAt(t, warehouseID, point(t, 24.87, 67.00))
		b := newRiderAt(t, warehouseID, point(t, 24.87, 67.00))
		expected := a
		if b.ID().Less(a.ID()) {
			expected = b
		}

		assigned, err := services.NewRiderDispatcher(50).Dispatch(newLeg(t, warehouseID), warehouseLocation, []*rider.Rider{a, b})

		require.NoError(t, err)
		assert.Equal(t, expected.ID(), assigned.ID())
	})

	t.Run("should skip riders of other warehouses and without location", func(t *testing.T) {
		foreign := newRiderAt(t, kernel.NewUUID(), point(t, 24.8607, 67.0011))
		lost := newRiderAt(t, warehouseID, nil)

		_, err := services.NewRiderDispatcher(50).Dispatch(newLeg(t, warehouseID), warehouseLocation, []*rider.Rider{foreign, lost})

		require.ErrorIs(t, err, services.ErrRiderNotFound)
	})

	t.Run("should skip riders outside the radius", func(t *testing.T) {
		// Lahore is roughly 1000 km from Karachi
		remote := newRiderAt(t, warehouseID, point(t, 31.5204, 74.3587))
		leg := newLeg(t, warehouseID)

		_, err := services.NewRiderDispatcher(50).Dispatch(leg, warehouseLocation, []*rider.Rider{remote})

		require.ErrorIs(t, err, services.ErrRiderNotFound)
		assert.Equal(t, rider.Available, remote.Status())
		assert.Equal(t, delivery.Unassigned, leg.Status())
	})

	t.Run("should return error when no riders provided", func(t *testing.T) {
		_, err := services.NewRiderDispatcher(50).Dispatch(newLeg(t, warehouseID), warehouseLocation, nil)

		require.ErrorIs(t, err, services.ErrRiderNotFound)
	})

	t.Run("should require a warehouse location", func(t *testing.T) {
		r := newRiderAt(t, warehouseID, point(t, 24.87, 67.00))

		_, err := services.NewRiderDispatcher(50).Dispatch(newLeg(t, warehouseID), nil, []*rider.Rider{r})

		require.ErrorIs(t, err, services.ErrWarehouseHasNoLocation)
	})

	t.Run("should refuse an already assigned delivery", func(t *testing.T) {
		leg := newLeg(t, warehouseID)
		require.NoError(t, leg.AssignRider(kernel.NewUUID()))
		r := newRiderAt(t, warehouseID, point(t, 24.87, 67.00))

		_, err := services.NewRiderDispatcher(50).Dispatch(leg, warehouseLocation, []*rider.Rider{r})

		require.ErrorIs(t, err, errs.ErrBusinessRuleBroken)
		assert.Equal(t, rider.Available, r.Status())
	})

	t.Run("should reject unconstructed rider", func(t *testing.T) {
		_, err := services.NewRiderDispatcher(50).Dispatch(newLeg(t, warehouseID), warehouseLocation, []*rider.Rider{{}})

		require.ErrorIs(t, err, rider.ErrRiderIsNotConstructed)
	})
}

func TestNewRiderDispatcher_DefaultRadius(t *testing.T) {
	assert.InDelta(t, services.DefaultAssignRadiusKm, services.NewRiderDispatcher(0).RadiusKm(), 1e-9)
}
