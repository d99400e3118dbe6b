package services_test

import (
	"testing"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/services"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lng float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return &p
}

func defaultCalculator(t *testing.T) services.PayoutCalculator {
	t.Helper()
	calc, err := services.NewPayoutCalculator(services.DefaultBaseRate, services.DefaultRatePerKm)
	require.NoError(t, err)
	return calc
}

func TestNewPayoutCalculator(t *testing.T) {
	_, err := services.NewPayoutCalculator(decimal.NewFromInt(-1), decimal.NewFromInt(10))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = services.NewPayoutCalculator(decimal.NewFromInt(50), decimal.NewFromInt(-10))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPayoutCalculator_Calculate(t *testing.T) {
	calc := defaultCalculator(t)

	t.Run("missing rider location pays the base rate", func(t *testing.T) {
		payout, err := calc.Calculate(nil, point(t, 24.86, 67.00))

		require.NoError(t, err)
		assert.True(t, payout.DistanceKm.IsZero())
		assert.Equal(t, "50.00", payout.Amount.StringFixed(2))
	})

	t.Run("missing warehouse location pays the base rate", func(t *testing.T) {
		payout, err := calc.Calculate(point(t, 24.86, 67.00), nil)

		require.NoError(t, err)
		assert.Equal(t, "50.00", payout.Amount.StringFixed(2))
	})

	t.Run("same point pays the base rate", func(t *testing.T) {
		payout, err := calc.Calculate(point(t, 24.86, 67.00), point(t, 24.86, 67.00))

		require.NoError(t, err)
		assert.Equal(t, "0.00", payout.DistanceKm.StringFixed(2))
		assert.Equal(t, "50.00", payout.Amount.StringFixed(2))
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		payout, err := calc.Calculate(point(t, 0, 0), point(t, 0, 1))

		require.NoError(t, err)
		// 2 * pi * 6371 / 360 = 111.19 km
		assert.Equal(t, "111.19", payout.DistanceKm.StringFixed(2))
		assert.Equal(t, "1161.90", payout.Amount.StringFixed(2))
	})

	t.Run("amount uses the rounded distance", func(t *testing.T) {
		rider := point(t, 0, 0)
		warehouse := point(t, 0, 0.021)

		payout, err := calc.Calculate(rider, warehouse)

		require.NoError(t, err)
		expected := services.DefaultBaseRate.Add(payout.DistanceKm.Mul(services.DefaultRatePerKm))
		assert.True(t, expected.Equal(payout.Amount), "%s != %s", expected, payout.Amount)
		assert.True(t, payout.DistanceKm.Equal(payout.DistanceKm.RoundBank(2)))
	})

	t.Run("custom rates", func(t *testing.T) {
		custom, err := services.NewPayoutCalculator(decimal.RequireFromString("20"), decimal.RequireFromString("2.5"))
		require.NoError(t, err)

		payout, err := custom.Calculate(point(t, 0, 0), point(t, 0, 1))

		require.NoError(t, err)
		assert.Equal(t, "297.98", payout.Amount.StringFixed(2))
	})

	t.Run("half cents round to even", func(t *testing.T) {
		tests := []struct {
			baseRate string
			want     string
		}{
			{baseRate: "0.125", want: "0.12"},
			{baseRate: "0.135", want: "0.14"},
			{baseRate: "50.005", want: "50.00"},
			{baseRate: "50.015", want: "50.02"},
		}

		for _, tt := range tests {
			flat, err := services.NewPayoutCalculator(decimal.RequireFromString(tt.baseRate), decimal.Zero)
			require.NoError(t, err)

			payout, err := flat.Calculate(nil, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, payout.Amount.StringFixed(2), tt.baseRate)
		}
	})

	t.Run("unconstructed location is rejected", func(t *testing.T) {
		_, err := calc.Calculate(&kernel.GeoPoint{}, point(t, 0, 0))
		require.Error(t, err)
	})
}
