// Package payment records money owed between marketplace parties. Payments
// are append-only: once written, a row is never updated by this service.
package payment

import (
	"errors"
	"fmt"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeWarehouseToRider Type = "warehouse_to_rider"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewRiderPayout or RestorePayment constructor")

type Payment struct {
	id          kernel.UUID
	paymentType Type
	payerID     kernel.UUID
	payeeID     kernel.UUID
	orderID     kernel.UUID
	amount      decimal.Decimal
	status      Status
	distanceKm  decimal.Decimal
	createdAt   time.Time

	isConstructed bool
}

// NewRiderPayout records a pending payout from the warehouse admin to the
// rider who delivered the order.
func NewRiderPayout(
	id kernel.UUID,
	warehouseAdminID kernel.UUID,
	riderID kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	distanceKm decimal.Decimal,
) (*Payment, error) {
	return build(id, TypeWarehouseToRider, warehouseAdminID, riderID, orderID, amount,
		StatusPending, distanceKm, time.Now().UTC())
}

func RestorePayment(
	id kernel.UUID,
	paymentType Type,
	payerID kernel.UUID,
	payeeID kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	distanceKm decimal.Decimal,
	createdAt time.Time,
) (*Payment, error) {
	return build(id, paymentType, payerID, payeeID, orderID, amount, status, distanceKm, createdAt)
}

func build(
	id kernel.UUID,
	paymentType Type,
	payerID kernel.UUID,
	payeeID kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	distanceKm decimal.Decimal,
	createdAt time.Time,
) (*Payment, error) {
	var errList []error

	for name, v := range map[string]kernel.UUID{"id": id, "payer_id": payerID, "payee_id": payeeID, "order_id": orderID} {
		if err := v.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause(name, err))
		}
	}
	if paymentType != TypeWarehouseToRider {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("payment_type", fmt.Errorf("%q is not supported", paymentType)))
	}
	switch status {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%q is not a valid status", status)))
	}
	if amount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount)))
	}
	if distanceKm.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("distance_km", fmt.Errorf("%s is negative", distanceKm)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		paymentType:   paymentType,
		payerID:       payerID,
		payeeID:       payeeID,
		orderID:       orderID,
		amount:        amount,
		status:        status,
		distanceKm:    distanceKm,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) Type() Type {
	return p.paymentType
}

func (p *Payment) PayerID() kernel.UUID {
	return p.payerID
}

func (p *Payment) PayeeID() kernel.UUID {
	return p.payeeID
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) DistanceKm() decimal.Decimal {
	return p.distanceKm
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}
