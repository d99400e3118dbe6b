// Package order provides the Order aggregate: a shopkeeper's request against
// one warehouse, its frozen order lines and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root, created with at least one line and an
//     immutable total computed from the line prices captured at placement
//   - Line: one (item, quantity, price) entry, immutable after creation
//   - Status: the lifecycle state machine with per-actor transition sets
//
// State transitions:
//
//	pending ──┬──> accepted ──┬──> in_transit ──> delivered
//	          │               │
//	          ├──> rejected   └──> cancelled
//	          └──> cancelled
//
// delivered, rejected, cancelled and failed are terminal. Who may perform a
// transition is decided by Actor; ownership (which warehouse manager, which
// rider) is checked by the application layer.
package order
