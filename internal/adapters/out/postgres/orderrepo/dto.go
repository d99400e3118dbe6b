// Package orderrepo persists order aggregates together with their lines.
// Lines are written once on Add; later updates only touch the order row.
package orderrepo

import (
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenOrderIndex is the partial unique index that backs the
// one-open-order-per-shopkeeper-and-warehouse rule.
const OpenOrderIndex = "uq_orders_open_per_shopkeeper_warehouse"

type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShopkeeperID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"size:20;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RejectionReason string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	Lines           []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the order in which
// the shopkeeper listed the items.
type OrderItemDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	Quantity int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]OrderItemDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		lines = append(lines, OrderItemDTO{
			ID:       l.ID().Bytes(),
			OrderID:  orderID,
			ItemID:   l.ItemID().Bytes(),
			Position: i,
			Quantity: l.Quantity(),
			Price:    l.Price(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		ShopkeeperID:    aggregate.ShopkeeperID().Bytes(),
		WarehouseID:     aggregate.WarehouseID().Bytes(),
		Status:          aggregate.Status().String(),
		TotalAmount:     aggregate.TotalAmount(),
		RejectionReason: aggregate.RejectionReason(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Lines:           lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	shopkeeperID, err := kernel.UUIDFromGoogle(dto.ShopkeeperID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromGoogle(dto.WarehouseID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromGoogle(l.ID)
		if lineErr != nil {
			return nil, lineErr
		}
		itemID, lineErr := kernel.UUIDFromGoogle(l.ItemID)
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := order.NewLine(lineID, itemID, l.Quantity, l.Price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, shopkeeperID, warehouseID, status, lines,
		dto.TotalAmount, dto.RejectionReason, dto.CreatedAt, dto.UpdatedAt)
}
