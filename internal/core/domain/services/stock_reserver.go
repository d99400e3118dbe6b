package services

import (
	"fmt"

	"stockway/internal/core/domain/model/inventory"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"
)

// RequestedLine is one (item, quantity) pair submitted by a shopkeeper.
type RequestedLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// StockReserver is a domain service that turns a shopkeeper's basket into
// priced order lines while decrementing the stock of the locked items.
//
// Key responsibilities:
//   - Rejecting empty and duplicate baskets
//   - Rejecting unknown, deleted and foreign items
//   - Collecting every shortfall before failing
//   - Copying the live price of each item into its order line
//
// Business rules:
//   - Items must be loaded with a row lock inside the caller's transaction
//   - No item is mutated unless every line passes every check
//   - Soft-deleted items are treated as not found
//
// Example usage:
//
//	reserver := services.NewStockReserver()
//	items, _ := itemRepo.GetForUpdate(ctx, ids)
//	lines, err := reserver.Reserve(warehouseID, requested, items)
//	var shortage *inventory.InsufficientStockError
//	if errors.As(err, &shortage) {
//	    // report shortage.Shortfalls
//	}
type StockReserver struct{}

// NewStockReserver creates a new StockReserver instance.
func NewStockReserver() StockReserver {
	return StockReserver{}
}

// Reserve validates requested against items and, on success, decrements
// the stock of every referenced item and returns one order line per request.
//
// Parameters:
//   - warehouseID: the warehouse the order is placed against
//   - requested: the basket, in submission order
//   - items: the locked items referenced by the basket (extra items are ignored)
//
// Returns:
//   - []*order.Line: lines carrying the price snapshot, in basket order
//   - error: the first failing check category; shortfalls are reported together
//
// Check order:
//   - basket shape (empty, non-positive quantity, duplicates)
//   - existence (missing or deleted items)
//   - ownership (item of another warehouse)
//   - availability (all shortfalls at once)
func (s StockReserver) Reserve(
	warehouseID kernel.UUID,
	requested []RequestedLine,
	items []*inventory.Item,
) ([]*order.Line, error) {
	if err := s.validateBasket(requested); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*inventory.Item, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		byID[item.ID()] = item
	}

	resolved := make([]*inventory.Item, 0, len(requested))
	for _, r := range requested {
		item, ok := byID[r.ItemID]
		if !ok || item.IsDeleted() {
			return nil, errs.NewObjectNotFoundError("item", r.ItemID.String())
		}
		resolved = append(resolved, item)
	}

	for _, item := range resolved {
		if !item.BelongsTo(warehouseID) {
			return nil, errs.NewBusinessRuleError("item_warehouse",
				fmt.Sprintf("Item '%s' does not belong to this warehouse", item.Name()))
		}
	}

	var shortfalls []inventory.Shortfall
	for i, item := range resolved {
		if item.Quantity() < requested[i].Quantity {
			shortfalls = append(shortfalls, inventory.Shortfall{
				ItemID:    item.ID(),
				ItemName:  item.Name(),
				Available: item.Quantity(),
				Requested: requested[i].Quantity,
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, inventory.NewInsufficientStockError(shortfalls...)
	}

	lines := make([]*order.Line, 0, len(requested))
	for i, item := range resolved {
		line, err := order.NewLine(kernel.NewUUID(), item.ID(), requested[i].Quantity, item.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	for i, item := range resolved {
		if err := item.Reserve(requested[i].Quantity); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

func (s StockReserver) validateBasket(requested []RequestedLine) error {
	if len(requested) == 0 {
		return order.ErrAtLeastOneLine
	}

	seen := make(map[kernel.UUID]struct{}, len(requested))
	for _, r := range requested {
		if err := r.ItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("item_id", err)
		}
		if r.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0 for item %s", r.Quantity, r.ItemID))
		}
		if _, ok := seen[r.ItemID]; ok {
			return order.ErrDuplicateLines
		}
		seen[r.ItemID] = struct{}{}
	}

	return nil
}
