// Package services provides domain services that orchestrate business operations
// across multiple aggregates of the marketplace. They implement rules that do
// not naturally belong to a single aggregate root.
//
// The package includes:
//   - StockReserver: validates a basket against locked items and decrements stock
//   - PayoutCalculator: prices a completed delivery from the rider-to-warehouse distance
//   - RiderDispatcher: picks the nearest available rider for an unassigned delivery
//
// Services are stateless apart from their configuration and never touch
// storage; the application layer loads and locks the aggregates they receive.
package services
