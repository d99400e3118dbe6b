package warehouse_test

import (
	"testing"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/warehouse"
	"stockway/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	loc, err := kernel.NewGeoPoint(24.8607, 67.0011)
	require.NoError(t, err)
	adminID := kernel.NewUUID()

	w, err := warehouse.NewWarehouse(kernel.NewUUID(), adminID, "Central Depot", "Plot 7, SITE Area", &loc)

	require.NoError(t, err)
	assert.True(t, w.IsActive())
	assert.False(t, w.IsApproved())
	assert.True(t, w.IsManagedBy(adminID))
	require.NotNil(t, w.Location())
	assert.Equal(t, 24.8607, w.Location().Lat())
}

func TestNewWarehouse_Invalid(t *testing.T) {
	_, err := warehouse.NewWarehouse(kernel.UUID{}, kernel.UUID{}, "", " ", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero kernel.GeoPoint
	_, err = warehouse.NewWarehouse(kernel.NewUUID(), kernel.NewUUID(), "Depot", "Street 1", &zero)
	assert.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
}

func TestWarehouse_EnsureAcceptsOrders(t *testing.T) {
	deletedAt := time.Now()

	tests := []struct {
		name       string
		active     bool
		approved   bool
		deletedAt  *time.Time
		wantErr    error
		wantReason string
	}{
		{name: "active and approved", active: true, approved: true},
		{name: "inactive", active: false, approved: true, wantErr: errs.ErrBusinessRuleBroken, wantReason: "Warehouse is not active"},
		{name: "unapproved", active: true, approved: false, wantErr: errs.ErrBusinessRuleBroken, wantReason: "Warehouse is not approved"},
		{name: "deleted", active: true, approved: true, deletedAt: &deletedAt, wantErr: errs.ErrObjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := warehouse.RestoreWarehouse(kernel.NewUUID(), kernel.NewUUID(), "Depot", "Street 1", nil, tt.active, tt.approved, tt.deletedAt)
			require.NoError(t, err)

			err = w.EnsureAcceptsOrders()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantReason != "" {
				assert.Contains(t, err.Error(), tt.wantReason)
			}
		})
	}
}

func TestWarehouse_Approve(t *testing.T) {
	w, err := warehouse.NewWarehouse(kernel.NewUUID(), kernel.NewUUID(), "Depot", "Street 1", nil)
	require.NoError(t, err)

	require.NoError(t, w.Approve())
	assert.True(t, w.IsApproved())
	assert.NoError(t, w.EnsureAcceptsOrders())

	w.Deactivate()
	assert.Error(t, w.EnsureAcceptsOrders())
	require.NoError(t, w.Activate())
	assert.NoError(t, w.EnsureAcceptsOrders())
}
