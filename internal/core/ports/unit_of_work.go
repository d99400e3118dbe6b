package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories
// returned after Begin share its transaction; domain events raised by the
// aggregates they save are written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ItemRepository() ItemRepository
	OrderRepository() OrderRepository
	WarehouseRepository() WarehouseRepository
	RiderRepository() RiderRepository
	DeliveryRepository() DeliveryRepository
	PaymentRepository() PaymentRepository
	UserRepository() UserRepository
	OutboxRepository() OutboxRepository
}
