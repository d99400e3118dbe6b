package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a domain event serialized inside the transaction that
// raised it, waiting to be relayed to the brokers.
type OutboxMessage struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository gives the relay access to pending messages.
type OutboxRepository interface {
	// GetUnprocessedForUpdate locks up to limit pending messages in
	// occurrence order, skipping rows claimed by another relay.
	GetUnprocessedForUpdate(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkProcessed(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to a broker. Publishing is at
// least once; consumers deduplicate by message id.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
