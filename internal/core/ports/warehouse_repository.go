package ports

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/warehouse"
)

type WarehouseRepository interface {
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error
	Update(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get returns errs.ObjectNotFoundError for unknown and soft-deleted warehouses.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)
}
