package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/ddd"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	ErrAtLeastOneLine        = errs.NewValueIsRequiredErrorWithCause("items", errors.New("At least one item is required"))
	ErrDuplicateLines        = errs.NewValueIsInvalidErrorWithCause("items", errors.New("Duplicate items are not allowed"))
)

// Order is the aggregate root for a shopkeeper's purchase from one warehouse.
//
// Order follows these invariants:
//   - it has at least one line and no two lines reference the same item
//   - totalAmount equals the sum of line totals and never changes
//   - status only moves along the transitions in status.go
//   - a rejected order carries a non-empty rejection reason
type Order struct {
	ddd.AggregateRoot

	id              kernel.UUID
	shopkeeperID    kernel.UUID
	warehouseID     kernel.UUID
	status          Status
	lines           []*Line
	totalAmount     decimal.Decimal
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewOrder creates a pending order and raises PlacedEvent. Line prices must
// already be copied from the items; the total is derived from them here.
func NewOrder(id kernel.UUID, shopkeeperID kernel.UUID, warehouseID kernel.UUID, lines []*Line) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopkeeperID(shopkeeperID),
		o.setWarehouseID(warehouseID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.totalAmount = sumLines(o.lines)
	o.RaiseDomainEvent(newPlacedEvent(o))
	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is trusted
// as the historical snapshot; it is not recomputed.
func RestoreOrder(
	id kernel.UUID,
	shopkeeperID kernel.UUID,
	warehouseID kernel.UUID,
	status Status,
	lines []*Line,
	totalAmount decimal.Decimal,
	rejectionReason string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		totalAmount:     totalAmount,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopkeeperID(shopkeeperID),
		o.setWarehouseID(warehouseID),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ShopkeeperID() kernel.UUID {
	return o.shopkeeperID
}

func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

func (o *Order) Status() Status {
	return o.status
}

// Lines returns a copy of the line slice; lines themselves are immutable.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) IsPlacedBy(shopkeeperID kernel.UUID) bool {
	return o.shopkeeperID.IsEqual(shopkeeperID)
}

// Accept is performed by the warehouse actor on a pending order.
func (o *Order) Accept() error {
	return o.transition(ActorWarehouse, Accepted)
}

// Reject is performed by the warehouse actor and requires a reason.
func (o *Order) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection_reason")
	}

	if _, err := o.status.TransitionTo(ActorWarehouse, Rejected); err != nil {
		return err
	}
	o.rejectionReason = reason
	return o.transition(ActorWarehouse, Rejected)
}

// Cancel is performed by the shopkeeper while the order is pending or accepted.
func (o *Order) Cancel() error {
	return o.transition(ActorShopkeeper, Cancelled)
}

// StartTransit is performed by the assigned rider on an accepted order.
func (o *Order) StartTransit() error {
	return o.transition(ActorRider, InTransit)
}

// MarkDelivered is performed by the assigned rider on an order in transit.
func (o *Order) MarkDelivered() error {
	return o.transition(ActorRider, Delivered)
}

func (o *Order) transition(actor Actor, next Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(actor, next)
	if err != nil {
		return err
	}

	from := o.status
	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	o.RaiseDomainEvent(newStatusChangedEvent(o, from))
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShopkeeperID(shopkeeperID kernel.UUID) error {
	if err := shopkeeperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopkeeper_id", err)
	}
	o.shopkeeperID = shopkeeperID
	return nil
}

func (o *Order) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	o.warehouseID = warehouseID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrAtLeastOneLine
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if l == nil {
			return errs.NewValueIsRequiredErrorWithCause("items", fmt.Errorf("line %d is nil", i))
		}
		if _, ok := seen[l.itemID]; ok {
			return ErrDuplicateLines
		}
		seen[l.itemID] = struct{}{}
	}

	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func sumLines(lines []*Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
