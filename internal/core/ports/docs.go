// Package ports defines the contracts between the marketplace core and its
// infrastructure: repositories, the unit of work that binds them to one
// transaction, the outbox and event publisher, and the idempotency store.
package ports
