package payment_test

import (
	"testing"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/payment"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRiderPayout(t *testing.T) {
	adminID, riderID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	p, err := payment.NewRiderPayout(kernel.NewUUID(), adminID, riderID, orderID, decimal.RequireFromString("73.40"), decimal.RequireFromString("2.34"))

	require.NoError(t, err)
	assert.Equal(t, payment.TypeWarehouseToRider, p.Type())
	assert.Equal(t, payment.StatusPending, p.Status())
	assert.Equal(t, adminID, p.PayerID())
	assert.Equal(t, riderID, p.PayeeID())
	assert.Equal(t, orderID, p.OrderID())
	assert.Equal(t, "2.34", p.DistanceKm().StringFixed(2))
	assert.False(t, p.CreatedAt().IsZero())
}

func TestNewRiderPayout_Validation(t *testing.T) {
	_, err := payment.NewRiderPayout(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), kernel.UUID{},
		decimal.NewFromInt(-1), decimal.NewFromInt(-3))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	for _, field := range []string{"payer_id", "order_id", "amount", "distance_km"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRestorePayment(t *testing.T) {
	_, err := payment.RestorePayment(kernel.NewUUID(), payment.Type("rider_to_warehouse"), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), decimal.Zero, payment.StatusCompleted, decimal.Zero, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	p, err := payment.RestorePayment(kernel.NewUUID(), payment.TypeWarehouseToRider, kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(50), payment.StatusCompleted, decimal.Zero, time.Now())
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status())
}
