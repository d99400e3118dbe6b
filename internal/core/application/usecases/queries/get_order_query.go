package queries

import (
	"errors"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its lines, parties and delivery leg.
//
// The order is visible to the shopkeeper who placed it, the manager of its
// warehouse, the rider assigned to it and admins. Everyone else gets not
// found.
type GetOrderQuery struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(principal kernel.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := setPrincipal(&q.principal, principal); err != nil {
		return GetOrderQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	q.orderID = orderID

	return q, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Principal() kernel.Principal {
	return q.principal
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the hydrated order. Line names and SKUs are read
// from the items table, including soft-deleted items.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Status          string
	TotalAmount     decimal.Decimal
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Shopkeeper      OrderShopkeeper
	Warehouse       OrderWarehouse
	Lines           []OrderLine
	Delivery        *OrderDelivery
}

// OrderShopkeeper carries the contact details of the shopkeeper. Email and
// phone are empty when the profile was never synced.
type OrderShopkeeper struct {
	ID          kernel.UUID
	Email       string
	PhoneNumber string
}

type OrderWarehouse struct {
	ID      kernel.UUID
	Name    string
	Address string
}

type OrderLine struct {
	ItemID   kernel.UUID
	Name     string
	SKU      string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
}

type OrderDelivery struct {
	RiderID     *kernel.UUID
	Status      string
	DeliveryFee decimal.Decimal
}
