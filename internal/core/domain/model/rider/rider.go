package rider

import (
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for rider operations.
var (
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")
	// ErrRiderIsNotAvailable is returned when assigning a rider that is busy or inactive.
	ErrRiderIsNotAvailable = errs.NewBusinessRuleError("rider_available", "Rider is not available")
	// ErrRiderIsBusy is returned when deactivating a rider in the middle of a delivery.
	ErrRiderIsBusy = errs.NewBusinessRuleError("rider_idle", "Rider has a delivery in progress")
)

// Rider represents a delivery person in the marketplace.
// The rider identity is the identity-provider user id of the person, so a
// user can be registered as a rider at most once.
//
// Key responsibilities:
//   - Tracking availability for manual and automatic assignment
//   - Holding the last reported location used for payouts and nearest lookup
//   - Accumulating earnings from completed deliveries
//
// Business rules:
//   - Rider must reference a valid user and warehouse
//   - New riders start available without a location
//   - Earnings start at zero and only ever grow
//
// Example usage:
//
//	r, err := rider.NewRider(userID, warehouseID)
//	if err != nil {
//	    return err
//	}
//	if err = r.MarkBusy(); err != nil {
//	    // rider was not available
//	}
type Rider struct {
	// userID is the identity of the person riding
	userID kernel.UUID
	// warehouseID is the warehouse the rider delivers for
	warehouseID kernel.UUID
	// status is the availability of the rider
	status Status
	// location is the last reported position, nil until the first report
	location *kernel.GeoPoint
	// totalEarnings is the sum of all payouts credited to the rider
	totalEarnings decimal.Decimal
	// guard ensures the rider was properly constructed
	guard guard.ConstructorGuard
}

// NewRider registers an available rider for a warehouse.
//
// Parameters:
//   - userID: identity of the rider (must be valid UUID)
//   - warehouseID: the warehouse the rider delivers for (must be valid UUID)
//
// Returns:
//   - *Rider: an available rider with zero earnings and no location
//   - error: aggregated validation errors
func NewRider(userID kernel.UUID, warehouseID kernel.UUID) (*Rider, error) {
	r := &Rider{
		status:        Available,
		totalEarnings: decimal.Zero,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setUserID(userID),
		r.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider from persistent storage, keeping its
// status, location and earnings as they were stored.
func RestoreRider(
	userID kernel.UUID,
	warehouseID kernel.UUID,
	status Status,
	location *kernel.GeoPoint,
	totalEarnings decimal.Decimal,
) (*Rider, error) {
	r := &Rider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setUserID(userID),
		r.setWarehouseID(warehouseID),
		r.setStatus(status),
		r.setEarnings(totalEarnings),
	); err != nil {
		return nil, err
	}
	r.location = location

	return r, nil
}

// Validate checks that the Rider was built by one of its constructors.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's user id.
func (r *Rider) ID() kernel.UUID {
	return r.userID
}

func (r *Rider) WarehouseID() kernel.UUID {
	return r.warehouseID
}

func (r *Rider) Status() Status {
	return r.status
}

// Location returns the last reported position, or nil when unknown.
func (r *Rider) Location() *kernel.GeoPoint {
	return r.location
}

func (r *Rider) TotalEarnings() decimal.Decimal {
	return r.totalEarnings
}

func (r *Rider) IsAvailable() bool {
	return r.status == Available
}

func (r *Rider) WorksFor(warehouseID kernel.UUID) bool {
	return r.warehouseID.IsEqual(warehouseID)
}

// MarkBusy takes the rider out of the assignment pool.
//
// Returns:
//   - error: ErrRiderIsNotAvailable when the rider is busy or inactive
func (r *Rider) MarkBusy() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.IsAvailable() {
		return ErrRiderIsNotAvailable
	}
	r.status = Busy
	return nil
}

// Release returns a busy rider to the pool without crediting anything.
// Used when the order the rider was carrying is cancelled.
func (r *Rider) Release() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == Busy {
		r.status = Available
	}
	return nil
}

// Credit adds a delivery payout to the rider's earnings and makes the rider
// available again.
//
// Parameters:
//   - payout: the amount earned for one delivery (must not be negative)
//
// Example:
//
//	fee := decimal.RequireFromString("73.40")
//	if err := r.Credit(fee); err != nil {
//	    return err
//	}
func (r *Rider) Credit(payout decimal.Decimal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if payout.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("payout", fmt.Errorf("%s is negative", payout))
	}
	r.totalEarnings = r.totalEarnings.Add(payout)
	r.status = Available
	return nil
}

// UpdateLocation records the rider's current position.
func (r *Rider) UpdateLocation(location kernel.GeoPoint) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = &location
	return nil
}

// Deactivate takes an idle rider off duty.
func (r *Rider) Deactivate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == Busy {
		return ErrRiderIsBusy
	}
	r.status = Inactive
	return nil
}

// Activate puts an inactive rider back on duty.
func (r *Rider) Activate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == Inactive {
		r.status = Available
	}
	return nil
}

func (r *Rider) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	r.userID = userID
	return nil
}

func (r *Rider) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	r.warehouseID = warehouseID
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Rider) setEarnings(earnings decimal.Decimal) error {
	if earnings.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total_earnings", fmt.Errorf("%s is negative", earnings))
	}
	r.totalEarnings = earnings
	return nil
}
