package ddd

// AggregateRoot collects the events raised during one unit of work. The
// unit of work drains them into the outbox on commit.
type AggregateRoot struct {
	domainEvents []DomainEvent
}

func (a *AggregateRoot) RaiseDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *AggregateRoot) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(a.domainEvents))
	copy(events, a.domainEvents)
	return events
}

func (a *AggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// EventSource is implemented by every aggregate embedding AggregateRoot.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
