// Package rider provides the Rider aggregate: a delivery person attached to a
// single warehouse who carries accepted orders to shopkeepers.
//
// The package includes:
//   - Rider: the aggregate root tracking availability, location and earnings
//   - Status: the availability state used by manual and automatic assignment
//
// Key business rules:
//   - A rider works for exactly one warehouse
//   - Only available riders can be assigned to a delivery
//   - Completing a delivery credits the payout and frees the rider
//   - Total earnings never decrease
package rider
