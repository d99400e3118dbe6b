package queries

import (
	"errors"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListShopkeeperOrdersQueryIsNotConstructed = errors.New(
		"ListShopkeeperOrdersQuery must be created via NewListShopkeeperOrdersQuery constructor",
	)
	ErrListWarehouseOrdersQueryIsNotConstructed = errors.New(
		"ListWarehouseOrdersQuery must be created via NewListWarehouseOrdersQuery constructor",
	)
)

// OrderSummary is one row of an order listing, newest first.
type OrderSummary struct {
	ID              kernel.UUID
	ShopkeeperID    kernel.UUID
	ShopkeeperEmail string
	WarehouseID     kernel.UUID
	WarehouseName   string
	Status          string
	TotalAmount     decimal.Decimal
	ItemCount       int
	CreatedAt       time.Time
}

// ListShopkeeperOrdersQuery lists the orders placed by the calling shopkeeper.
type ListShopkeeperOrdersQuery struct {
	principal kernel.Principal

	guard guard.ConstructorGuard
}

func NewListShopkeeperOrdersQuery(principal kernel.Principal) (ListShopkeeperOrdersQuery, error) {
	q := ListShopkeeperOrdersQuery{guard: guard.NewConstructorGuard()}
	if err := setPrincipal(&q.principal, principal); err != nil {
		return ListShopkeeperOrdersQuery{}, err
	}
	return q, nil
}

func (q ListShopkeeperOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListShopkeeperOrdersQueryIsNotConstructed)
}

func (q ListShopkeeperOrdersQuery) Principal() kernel.Principal {
	return q.principal
}

// ListWarehouseOrdersQuery lists a warehouse's orders, optionally narrowed
// to one status.
type ListWarehouseOrdersQuery struct {
	principal   kernel.Principal
	warehouseID kernel.UUID
	status      *order.Status

	guard guard.ConstructorGuard
}

// NewListWarehouseOrdersQuery accepts an empty status as "all statuses".
func NewListWarehouseOrdersQuery(
	principal kernel.Principal,
	warehouseID kernel.UUID,
	status string,
) (ListWarehouseOrdersQuery, error) {
	q := ListWarehouseOrdersQuery{guard: guard.NewConstructorGuard()}

	var errList []error
	errList = append(errList, setPrincipal(&q.principal, principal))
	if err := warehouseID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("warehouse_id", err))
	}
	q.warehouseID = warehouseID

	if strings.TrimSpace(status) != "" {
		s, err := order.StatusFromString(status)
		if err != nil {
			errList = append(errList, err)
		}
		q.status = &s
	}

	if err := errors.Join(errList...); err != nil {
		return ListWarehouseOrdersQuery{}, err
	}
	return q, nil
}

func (q ListWarehouseOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWarehouseOrdersQueryIsNotConstructed)
}

func (q ListWarehouseOrdersQuery) Principal() kernel.Principal {
	return q.principal
}

func (q ListWarehouseOrdersQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// Status is nil when every status is requested.
func (q ListWarehouseOrdersQuery) Status() *order.Status {
	return q.status
}
