package ports

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
)

type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get looks the rider up by the rider's user id.
	Get(ctx context.Context, userID kernel.UUID) (*rider.Rider, error)

	// GetForUpdate is Get with a row lock; earnings are credited through it.
	GetForUpdate(ctx context.Context, userID kernel.UUID) (*rider.Rider, error)

	// GetAvailableForUpdate locks the available riders of a warehouse,
	// skipping rows already locked by a concurrent assignment.
	GetAvailableForUpdate(ctx context.Context, warehouseID kernel.UUID) ([]*rider.Rider, error)
}
