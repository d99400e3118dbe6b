package ports

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// together with their lines.
type OrderRepository interface {
	// Add persists a new order and its lines. A second open order for the
	// same shopkeeper and warehouse fails with errs.ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes. Lines and total are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Status transitions load the order through it so concurrent moves
	// serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsOpen reports whether the shopkeeper has a pending or accepted
	// order against the warehouse.
	ExistsOpen(ctx context.Context, shopkeeperID kernel.UUID, warehouseID kernel.UUID) (bool, error)
}
