package queries

import (
	"context"
	"errors"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListWarehousePayoutsQueryIsNotConstructed = errors.New(
	"ListWarehousePayoutsQuery must be created via NewListWarehousePayoutsQuery constructor",
)

// ListWarehousePayoutsQuery lists the rider payouts owed for orders of a
// warehouse, newest first.
type ListWarehousePayoutsQuery struct {
	principal   kernel.Principal
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListWarehousePayoutsQuery(principal kernel.Principal, warehouseID kernel.UUID) (ListWarehousePayoutsQuery, error) {
	q := ListWarehousePayoutsQuery{guard: guard.NewConstructorGuard()}

	var warehouseErr error
	if err := warehouseID.Validate(); err != nil {
		warehouseErr = errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	q.warehouseID = warehouseID

	if err := errors.Join(setPrincipal(&q.principal, principal), warehouseErr); err != nil {
		return ListWarehousePayoutsQuery{}, err
	}
	return q, nil
}

func (q ListWarehousePayoutsQuery) Validate() error {
	return q.guard.Validate(ErrListWarehousePayoutsQueryIsNotConstructed)
}

type ListWarehousePayoutsQueryResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	RiderID    kernel.UUID
	Amount     decimal.Decimal
	DistanceKm decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

type ListWarehousePayoutsQueryHandler struct {
	db *gorm.DB
}

func NewListWarehousePayoutsQueryHandler(db *gorm.DB) ListWarehousePayoutsQueryHandler {
	return ListWarehousePayoutsQueryHandler{db: db}
}

func (h ListWarehousePayoutsQueryHandler) Handle(
	ctx context.Context,
	query ListWarehousePayoutsQuery,
) ([]ListWarehousePayoutsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWarehouse(ctx, h.db, query.principal, "list payouts", query.warehouseID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_id,
			p.payee_id,
			p.amount,
			p.distance_km,
			p.status,
			p.created_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.warehouse_id = ? AND p.payment_type = 'warehouse_to_rider'
		ORDER BY p.created_at DESC, p.id
	`, query.warehouseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListWarehousePayoutsQueryResponse, 0)
	for rows.Next() {
		var (
			id, orderID, riderID uuid.UUID
			resp                 ListWarehousePayoutsQueryResponse
		)
		err = rows.Scan(&id, &orderID, &riderID, &resp.Amount, &resp.DistanceKm, &resp.Status, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromGoogle(orderID); err != nil {
			return nil, err
		}
		if resp.RiderID, err = kernel.UUIDFromGoogle(riderID); err != nil {
			return nil, err
		}
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
