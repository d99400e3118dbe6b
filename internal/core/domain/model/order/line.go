package order

import (
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one item of an order with the unit price captured at placement.
// Lines never change after the order is created.
type Line struct {
	id       kernel.UUID
	itemID   kernel.UUID
	quantity int
	price    decimal.Decimal
}

func NewLine(id kernel.UUID, itemID kernel.UUID, quantity int, price decimal.Decimal) (*Line, error) {
	l := &Line{}

	if err := errors.Join(
		l.setID(id),
		l.setItemID(itemID),
		l.setQuantity(quantity),
		l.setPrice(price),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) ItemID() kernel.UUID {
	return l.itemID
}

func (l *Line) Quantity() int {
	return l.quantity
}

func (l *Line) Price() decimal.Decimal {
	return l.price
}

// Total is price multiplied by quantity.
func (l *Line) Total() decimal.Decimal {
	return l.price.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	l.itemID = itemID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	l.price = price
	return nil
}
