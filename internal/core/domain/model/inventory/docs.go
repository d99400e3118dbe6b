// Package inventory holds the Item aggregate: the per-warehouse stock ledger
// that order placement reserves from and warehouse managers restock.
//
// Invariants:
//   - quantity never drops below zero; Reserve fails with
//     InsufficientStockError instead
//   - price is a non-negative amount with two decimal places
//   - items are soft deleted; a deleted item can no longer be reserved or
//     restocked but stays readable for historical order lines
package inventory
