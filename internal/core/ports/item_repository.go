package ports

import (
	"context"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for warehouse items.
type ItemRepository interface {
	Add(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error

	// Get hides soft-deleted items unless includeDeleted is set.
	Get(ctx context.Context, id kernel.UUID, includeDeleted bool) (*inventory.Item, error)

	// GetForUpdate locks the rows of the given items in ascending id order
	// and returns them, soft-deleted ones included. Unknown ids are absent
	// from the result rather than reported as errors.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*inventory.Item, error)
}
