package queries

import (
	"context"

	"stockway/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderSummarySelect = `
	SELECT
		o.id,
		o.shopkeeper_id,
		COALESCE(u.email, '') AS shopkeeper_email,
		o.warehouse_id,
		w.name AS warehouse_name,
		o.status,
		o.total_amount,
		(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count,
		o.created_at
	FROM orders o
	JOIN warehouses w ON w.id = o.warehouse_id
	LEFT JOIN users u ON u.id = o.shopkeeper_id
`

type ListShopkeeperOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListShopkeeperOrdersQueryHandler(db *gorm.DB) ListShopkeeperOrdersQueryHandler {
	return ListShopkeeperOrdersQueryHandler{db: db}
}

func (h ListShopkeeperOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListShopkeeperOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(query.Principal(), "list orders", kernel.RoleShopkeeper); err != nil {
		return nil, err
	}

	return scanOrderSummaries(h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.shopkeeper_id = ?
		ORDER BY o.created_at DESC, o.id
	`, query.Principal().UserID().Bytes()))
}

type ListWarehouseOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListWarehouseOrdersQueryHandler(db *gorm.DB) ListWarehouseOrdersQueryHandler {
	return ListWarehouseOrdersQueryHandler{db: db}
}

func (h ListWarehouseOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListWarehouseOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWarehouse(ctx, h.db, query.Principal(), "list warehouse orders", query.WarehouseID()); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if status := query.Status(); status != nil {
		return scanOrderSummaries(db.Raw(orderSummarySelect+`
			WHERE o.warehouse_id = ? AND o.status = ?
			ORDER BY o.created_at DESC, o.id
		`, query.WarehouseID().Bytes(), status.String()))
	}

	return scanOrderSummaries(db.Raw(orderSummarySelect+`
		WHERE o.warehouse_id = ?
		ORDER BY o.created_at DESC, o.id
	`, query.WarehouseID().Bytes()))
}

func scanOrderSummaries(stmt *gorm.DB) ([]OrderSummary, error) {
	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			id, shopkeeperID, warehouseID uuid.UUID
			summary                       OrderSummary
			total                         decimal.Decimal
		)
		err = rows.Scan(
			&id,
			&shopkeeperID,
			&summary.ShopkeeperEmail,
			&warehouseID,
			&summary.WarehouseName,
			&summary.Status,
			&total,
			&summary.ItemCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		summary.TotalAmount = total

		if summary.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if summary.ShopkeeperID, err = kernel.UUIDFromGoogle(shopkeeperID); err != nil {
			return nil, err
		}
		if summary.WarehouseID, err = kernel.UUIDFromGoogle(warehouseID); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
