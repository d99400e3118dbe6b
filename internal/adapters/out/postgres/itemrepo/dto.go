// Package itemrepo persists warehouse items. Items are soft deleted so that
// historical order lines keep a valid reference.
package itemrepo

import (
	"time"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SKUIndex is the unique index name on items.sku.
const SKUIndex = "idx_items_sku"

type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"size:255;not null"`
	SKU         string          `gorm:"column:sku;size:100;not null;uniqueIndex:idx_items_sku"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity    int             `gorm:"not null;check:chk_items_quantity,quantity >= 0"`
	DeletedAt   *time.Time      `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(item *inventory.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID().Bytes(),
		WarehouseID: item.WarehouseID().Bytes(),
		Name:        item.Name(),
		SKU:         item.SKU(),
		Price:       item.Price(),
		Quantity:    item.Quantity(),
		DeletedAt:   item.DeletedAt(),
	}
}

func toDomain(dto ItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromGoogle(dto.WarehouseID)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreItem(id, warehouseID, dto.Name, dto.SKU, dto.Price, dto.Quantity, dto.DeletedAt)
}
