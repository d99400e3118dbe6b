package services

import (
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	DefaultBaseRate  = decimal.RequireFromString("50.00")
	DefaultRatePerKm = decimal.RequireFromString("10.00")
)

// distanceScale is the number of decimal places kept for distances and amounts.
const distanceScale = 2

// Payout is the result of pricing one delivery.
type Payout struct {
	DistanceKm decimal.Decimal
	Amount     decimal.Decimal
}

// PayoutCalculator prices a delivery as base rate plus a per-kilometre rate
// applied to the straight-line distance between rider and warehouse.
//
// Business rules:
//   - Distance is the haversine distance rounded to 2 decimal places
//   - A missing location on either side gives a distance of 0
//   - The amount is rounded to 2 decimal places
//   - Both roundings are half to even, so 0.125 becomes 0.12
//
// Example usage:
//
//	calc, _ := services.NewPayoutCalculator(services.DefaultBaseRate, services.DefaultRatePerKm)
//	payout, err := calc.Calculate(r.Location(), w.Location())
type PayoutCalculator struct {
	baseRate  decimal.Decimal
	ratePerKm decimal.Decimal
}

// NewPayoutCalculator validates that both rates are non-negative.
func NewPayoutCalculator(baseRate decimal.Decimal, ratePerKm decimal.Decimal) (PayoutCalculator, error) {
	if baseRate.IsNegative() {
		return PayoutCalculator{}, errs.NewValueIsInvalidErrorWithCause("base_rate", fmt.Errorf("%s is negative", baseRate))
	}
	if ratePerKm.IsNegative() {
		return PayoutCalculator{}, errs.NewValueIsInvalidErrorWithCause("rate_per_km", fmt.Errorf("%s is negative", ratePerKm))
	}
	return PayoutCalculator{baseRate: baseRate, ratePerKm: ratePerKm}, nil
}

func (c PayoutCalculator) BaseRate() decimal.Decimal {
	return c.baseRate
}

func (c PayoutCalculator) RatePerKm() decimal.Decimal {
	return c.ratePerKm
}

// Calculate returns the rounded distance and the payout amount.
//
// Parameters:
//   - riderLocation: last reported rider position, may be nil
//   - warehouseLocation: warehouse coordinates, may be nil
//
// Returns:
//   - Payout: distance and amount, both with 2 decimal places
//   - error: validation error if a non-nil location was not constructed
func (c PayoutCalculator) Calculate(riderLocation *kernel.GeoPoint, warehouseLocation *kernel.GeoPoint) (Payout, error) {
	distance := decimal.Zero

	if riderLocation != nil && warehouseLocation != nil {
		km, err := riderLocation.DistanceKm(*warehouseLocation)
		if err != nil {
			return Payout{}, err
		}
		distance = decimal.NewFromFloat(km).RoundBank(distanceScale)
	}

	amount := c.baseRate.Add(distance.Mul(c.ratePerKm)).RoundBank(distanceScale)

	return Payout{
		DistanceKm: distance,
		Amount:     amount,
	}, nil
}
