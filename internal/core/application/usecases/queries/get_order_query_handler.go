package queries

import (
	"context"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderHeaderRow struct {
	ID               uuid.UUID
	ShopkeeperID     uuid.UUID
	WarehouseID      uuid.UUID
	Status           string
	TotalAmount      decimal.Decimal
	RejectionReason  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ShopkeeperEmail  *string
	ShopkeeperPhone  *string
	WarehouseName    string
	WarehouseAddress string
	WarehouseAdminID uuid.UUID
	RiderID          *uuid.UUID
	DeliveryStatus   *string
	DeliveryFee      decimal.NullDecimal
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var headers []orderHeaderRow
	err := db.Raw(`
		SELECT
			o.id,
			o.shopkeeper_id,
			o.warehouse_id,
			o.status,
			o.total_amount,
			o.rejection_reason,
			o.created_at,
			o.updated_at,
			u.email AS shopkeeper_email,
			u.phone_number AS shopkeeper_phone,
			w.name AS warehouse_name,
			w.address AS warehouse_address,
			w.admin_id AS warehouse_admin_id,
			d.rider_id,
			d.status AS delivery_status,
			d.delivery_fee
		FROM orders o
		JOIN warehouses w ON w.id = o.warehouse_id
		LEFT JOIN users u ON u.id = o.shopkeeper_id
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&headers).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if len(headers) == 0 || !canSeeOrder(query.Principal(), headers[0]) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	header := headers[0]

	lines, err := h.lines(ctx, header.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return toOrderResponse(header, lines)
}

func (h GetOrderQueryHandler) lines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.item_id,
			i.name,
			i.sku,
			oi.quantity,
			oi.price
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = ?
		ORDER BY oi.position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLine, 0)
	for rows.Next() {
		var (
			itemID uuid.UUID
			line   OrderLine
		)
		if err = rows.Scan(&itemID, &line.Name, &line.SKU, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromGoogle(itemID)
		if idErr != nil {
			return nil, idErr
		}
		line.ItemID = id
		line.Total = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func canSeeOrder(principal kernel.Principal, row orderHeaderRow) bool {
	userID := principal.UserID().Bytes()

	switch principal.Role() {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleShopkeeper:
		return row.ShopkeeperID == userID
	case kernel.RoleWarehouseManager:
		return row.WarehouseAdminID == userID
	case kernel.RoleRider:
		return row.RiderID != nil && *row.RiderID == userID
	default:
		return false
	}
}

func toOrderResponse(row orderHeaderRow, lines []OrderLine) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	shopkeeperID, err := kernel.UUIDFromGoogle(row.ShopkeeperID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	warehouseID, err := kernel.UUIDFromGoogle(row.WarehouseID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:              id,
		Status:          row.Status,
		TotalAmount:     row.TotalAmount,
		RejectionReason: row.RejectionReason,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		Shopkeeper: OrderShopkeeper{
			ID:          shopkeeperID,
			Email:       deref(row.ShopkeeperEmail),
			PhoneNumber: deref(row.ShopkeeperPhone),
		},
		Warehouse: OrderWarehouse{
			ID:      warehouseID,
			Name:    row.WarehouseName,
			Address: row.WarehouseAddress,
		},
		Lines: lines,
	}

	if row.DeliveryStatus != nil {
		leg := &OrderDelivery{
			Status:      *row.DeliveryStatus,
			DeliveryFee: row.DeliveryFee.Decimal,
		}
		if row.RiderID != nil {
			riderID, riderErr := kernel.UUIDFromGoogle(*row.RiderID)
			if riderErr != nil {
				return GetOrderQueryResponse{}, riderErr
			}
			leg.RiderID = &riderID
		}
		resp.Delivery = leg
	}

	return resp, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
