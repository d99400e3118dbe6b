// Package publisher combines several event publishers behind one
// ports.EventPublisher.
package publisher

import (
	"context"
	"errors"

	"stockway/internal/core/ports"
)

// Multi publishes every batch to each publisher in turn and stops at the
// first failure. The relay then retries the whole batch, so a publisher that
// already succeeded may see it twice.
type Multi struct {
	publishers []ports.EventPublisher
}

func NewMulti(publishers ...ports.EventPublisher) *Multi {
	return &Multi{publishers: publishers}
}

func (m *Multi) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, messages...); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops every message. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, ...ports.OutboxMessage) error {
	return nil
}

var _ ports.EventPublisher = Discard{}

// ErrNoPublishers is returned by Compose when nothing was configured.
var ErrNoPublishers = errors.New("no event publishers configured")

// Compose returns the single publisher as is, or a Multi for several.
func Compose(publishers ...ports.EventPublisher) (ports.EventPublisher, error) {
	switch len(publishers) {
	case 0:
		return nil, ErrNoPublishers
	case 1:
		return publishers[0], nil
	default:
		return NewMulti(publishers...), nil
	}
}
