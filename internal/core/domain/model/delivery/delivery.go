// Package delivery holds the delivery leg of an accepted order: which rider
// carries it, where it is, and the fee paid for it.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/ddd"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")
	ErrRiderAlreadyAssigned     = errs.NewConflictError("delivery", "A rider is already assigned to this order")
	ErrRiderNotAssigned         = errs.NewBusinessRuleError("delivery_assigned", "No rider is assigned to this order")
)

// Delivery is one-to-one with an order and is identified by the order id.
// It is created when the warehouse accepts the order.
type Delivery struct {
	ddd.AggregateRoot

	orderID     kernel.UUID
	warehouseID kernel.UUID
	riderID     *kernel.UUID
	status      Status
	deliveryFee decimal.Decimal
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

func NewDelivery(orderID kernel.UUID, warehouseID kernel.UUID) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        Unassigned,
		deliveryFee:   decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setOrderID(orderID),
		d.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func RestoreDelivery(
	orderID kernel.UUID,
	warehouseID kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	deliveryFee decimal.Decimal,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		riderID:       riderID,
		deliveryFee:   deliveryFee,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setOrderID(orderID),
		d.setWarehouseID(warehouseID),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	if d.riderID == nil && d.status != Unassigned && d.status != Cancelled {
		return nil, errs.NewValueIsRequiredErrorWithCause("rider_id",
			fmt.Errorf("delivery in status %s has no rider", d.status))
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) WarehouseID() kernel.UUID {
	return d.warehouseID
}

// RiderID is nil until a rider is assigned.
func (d *Delivery) RiderID() *kernel.UUID {
	return d.riderID
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) DeliveryFee() decimal.Decimal {
	return d.deliveryFee
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

func (d *Delivery) IsAssignedTo(riderID kernel.UUID) bool {
	return d.riderID != nil && d.riderID.IsEqual(riderID)
}

// AssignRider attaches a rider to an unassigned delivery. Reassignment is a
// conflict; an ended delivery cannot take a rider at all.
func (d *Delivery) AssignRider(riderID kernel.UUID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rider_id", err)
	}

	switch d.status {
	case Unassigned:
	case Assigned, InTransit:
		return ErrRiderAlreadyAssigned
	default:
		return errs.NewBusinessRuleError("delivery_open", fmt.Sprintf("Delivery is %s", d.status))
	}

	d.riderID = &riderID
	d.status = Assigned
	d.touch()
	d.RaiseDomainEvent(RiderAssignedEvent{
		BaseEvent:   ddd.NewBaseEvent(EventRiderAssigned, d.orderID.Bytes()),
		OrderID:     d.orderID.String(),
		WarehouseID: d.warehouseID.String(),
		RiderID:     riderID.String(),
	})
	return nil
}

// Start moves an assigned delivery into transit.
func (d *Delivery) Start() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.status != Assigned {
		return d.wrongState(InTransit)
	}
	d.status = InTransit
	d.touch()
	return nil
}

// Complete ends a delivery in transit and records the fee paid to the rider.
func (d *Delivery) Complete(fee decimal.Decimal) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery_fee", fmt.Errorf("%s is negative", fee))
	}
	if d.status != InTransit {
		return d.wrongState(Delivered)
	}

	d.status = Delivered
	d.deliveryFee = fee
	d.touch()
	d.RaiseDomainEvent(CompletedEvent{
		BaseEvent:   ddd.NewBaseEvent(EventDeliveryCompleted, d.orderID.Bytes()),
		OrderID:     d.orderID.String(),
		WarehouseID: d.warehouseID.String(),
		RiderID:     d.riderID.String(),
		DeliveryFee: fee.StringFixed(2),
	})
	return nil
}

// Cancel stops a delivery that has not left the warehouse. The caller is
// responsible for releasing the rider returned by RiderID.
func (d *Delivery) Cancel() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.status != Unassigned && d.status != Assigned {
		return d.wrongState(Cancelled)
	}
	d.status = Cancelled
	d.touch()
	return nil
}

func (d *Delivery) wrongState(target Status) error {
	if target != Cancelled && d.riderID == nil {
		return ErrRiderNotAssigned
	}
	return errs.NewBusinessRuleError("delivery_status",
		fmt.Sprintf("Delivery cannot move from %s to %s", d.status, target))
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	d.warehouseID = warehouseID
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
