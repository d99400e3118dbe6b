package postgres

import (
	"fmt"

	"stockway/internal/adapters/out/postgres/deliveryrepo"
	"stockway/internal/adapters/out/postgres/itemrepo"
	"stockway/internal/adapters/out/postgres/orderrepo"
	"stockway/internal/adapters/out/postgres/outboxrepo"
	"stockway/internal/adapters/out/postgres/paymentrepo"
	"stockway/internal/adapters/out/postgres/riderrepo"
	"stockway/internal/adapters/out/postgres/userrepo"
	"stockway/internal/adapters/out/postgres/warehouserepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. The open-order index is partial,
// which GORM tags cannot express, so it is created with raw SQL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userrepo.UserDTO{},
		&warehouserepo.WarehouseDTO{},
		&itemrepo.ItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&riderrepo.RiderDTO{},
		&deliveryrepo.DeliveryDTO{},
		&paymentrepo.PaymentDTO{},
		&outboxrepo.OutboxMessageDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON orders (shopkeeper_id, warehouse_id) WHERE status IN ('pending', 'accepted')",
		orderrepo.OpenOrderIndex)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create open order index: %w", err)
	}

	return nil
}
