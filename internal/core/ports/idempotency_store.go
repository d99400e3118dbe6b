package ports

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
)

// IdempotencyStore remembers which order a client-supplied key produced.
// Keys are scoped per shopkeeper: the same key sent by two shopkeepers
// names two different checkouts.
type IdempotencyStore interface {
	// Lookup returns the order the shopkeeper created with key, if any.
	Lookup(ctx context.Context, shopkeeperID kernel.UUID, key string) (kernel.UUID, bool, error)

	// Remember records the order created for key. An existing entry is kept.
	Remember(ctx context.Context, shopkeeperID kernel.UUID, key string, orderID kernel.UUID) error
}
