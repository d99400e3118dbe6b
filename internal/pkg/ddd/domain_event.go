// Package ddd holds the building blocks shared by aggregates that publish
// domain events through the transactional outbox.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. Concrete events embed
// BaseEvent and add exported, JSON-tagged payload fields.
type DomainEvent interface {
	EventID() uuid.UUID
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

type BaseEvent struct {
	id          uuid.UUID
	name        string
	aggregateID uuid.UUID
	occurredAt  time.Time
}

func NewBaseEvent(name string, aggregateID uuid.UUID) BaseEvent {
	return BaseEvent{
		id:          uuid.New(),
		name:        name,
		aggregateID: aggregateID,
		occurredAt:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID {
	return e.id
}

func (e BaseEvent) EventName() string {
	return e.name
}

func (e BaseEvent) AggregateID() uuid.UUID {
	return e.aggregateID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}
