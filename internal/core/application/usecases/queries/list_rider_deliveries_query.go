package queries

import (
	"context"
	"errors"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListRiderDeliveriesQueryIsNotConstructed = errors.New(
	"ListRiderDeliveriesQuery must be created via NewListRiderDeliveriesQuery constructor",
)

// ListRiderDeliveriesQuery lists the delivery legs assigned to the calling
// rider, open ones first.
type ListRiderDeliveriesQuery struct {
	principal kernel.Principal

	guard guard.ConstructorGuard
}

func NewListRiderDeliveriesQuery(principal kernel.Principal) (ListRiderDeliveriesQuery, error) {
	q := ListRiderDeliveriesQuery{guard: guard.NewConstructorGuard()}
	if err := setPrincipal(&q.principal, principal); err != nil {
		return ListRiderDeliveriesQuery{}, err
	}
	return q, nil
}

func (q ListRiderDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListRiderDeliveriesQueryIsNotConstructed)
}

type ListRiderDeliveriesQueryResponse struct {
	OrderID          kernel.UUID
	OrderStatus      string
	DeliveryStatus   string
	DeliveryFee      decimal.Decimal
	WarehouseName    string
	WarehouseAddress string
	TotalAmount      decimal.Decimal
	UpdatedAt        time.Time
}

type ListRiderDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListRiderDeliveriesQueryHandler(db *gorm.DB) ListRiderDeliveriesQueryHandler {
	return ListRiderDeliveriesQueryHandler{db: db}
}

func (h ListRiderDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListRiderDeliveriesQuery,
) ([]ListRiderDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(query.principal, "list deliveries", kernel.RoleRider); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.order_id,
			o.status,
			d.status,
			d.delivery_fee,
			w.name,
			w.address,
			o.total_amount,
			d.updated_at
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		JOIN warehouses w ON w.id = d.warehouse_id
		WHERE d.rider_id = ?
		ORDER BY
			CASE WHEN d.status IN ('assigned', 'in_transit') THEN 0 ELSE 1 END,
			d.updated_at DESC,
			d.order_id
	`, query.principal.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListRiderDeliveriesQueryResponse, 0)
	for rows.Next() {
		var (
			orderID uuid.UUID
			resp    ListRiderDeliveriesQueryResponse
		)
		err = rows.Scan(
			&orderID,
			&resp.OrderStatus,
			&resp.DeliveryStatus,
			&resp.DeliveryFee,
			&resp.WarehouseName,
			&resp.WarehouseAddress,
			&resp.TotalAmount,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromGoogle(orderID); err != nil {
			return nil, err
		}
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
