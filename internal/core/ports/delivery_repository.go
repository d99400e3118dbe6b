package ports

import (
	"context"
	"time"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"
)

// DeliveryCursor is the position of the last delivery of a page ordered by
// (created_at, order_id).
type DeliveryCursor struct {
	CreatedAt time.Time
	OrderID   kernel.UUID
}

// CursorOf returns the cursor positioned on d.
func CursorOf(d *delivery.Delivery) *DeliveryCursor {
	return &DeliveryCursor{CreatedAt: d.CreatedAt(), OrderID: d.OrderID()}
}

type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetForUpdate locks the delivery of an order.
	GetForUpdate(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetUnassignedForUpdate locks up to limit unassigned deliveries whose
	// warehouse has a location, oldest first, starting after the cursor when
	// one is given. Rows locked by another worker are skipped.
	GetUnassignedForUpdate(ctx context.Context, after *DeliveryCursor, limit int) ([]*delivery.Delivery, error)
}
