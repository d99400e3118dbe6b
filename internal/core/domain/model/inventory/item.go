package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places stored for item prices.
const PriceScale = 2

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")
	ErrItemIsDeleted        = errors.New("item is deleted")
)

// Item is a stock keeping unit held by a single warehouse.
type Item struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	name        string
	sku         string
	price       decimal.Decimal
	quantity    int
	deletedAt   *time.Time

	isConstructed bool
}

// NewItem registers a new item in a warehouse with an initial stock level.
func NewItem(
	id kernel.UUID,
	warehouseID kernel.UUID,
	name string,
	sku string,
	price decimal.Decimal,
	quantity int,
) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setWarehouseID(warehouseID),
		item.setName(name),
		item.setSKU(sku),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds an item loaded from storage.
func RestoreItem(
	id kernel.UUID,
	warehouseID kernel.UUID,
	name string,
	sku string,
	price decimal.Decimal,
	quantity int,
	deletedAt *time.Time,
) (*Item, error) {
	item, err := NewItem(id, warehouseID, name, sku, price, quantity)
	if err != nil {
		return nil, err
	}
	item.deletedAt = deletedAt
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) WarehouseID() kernel.UUID {
	return i.warehouseID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) SKU() string {
	return i.sku
}

// Price returns the live price. Order lines copy it at placement time.
func (i *Item) Price() decimal.Decimal {
	return i.price
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) DeletedAt() *time.Time {
	return i.deletedAt
}

func (i *Item) IsDeleted() bool {
	return i.deletedAt != nil
}

func (i *Item) BelongsTo(warehouseID kernel.UUID) bool {
	return i.warehouseID.IsEqual(warehouseID)
}

// CanReserve reports whether requested units are available without mutating
// the item.
func (i *Item) CanReserve(requested int) error {
	if requested <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", requested))
	}
	if i.IsDeleted() {
		return ErrItemIsDeleted
	}
	if i.quantity < requested {
		return NewInsufficientStockError(Shortfall{
			ItemID:    i.id,
			ItemName:  i.name,
			Available: i.quantity,
			Requested: requested,
		})
	}
	return nil
}

// Reserve decrements stock by requested units.
func (i *Item) Reserve(requested int) error {
	if err := i.CanReserve(requested); err != nil {
		return err
	}
	i.quantity -= requested
	return nil
}

// Restock adds units to the item.
func (i *Item) Restock(units int) error {
	if i.IsDeleted() {
		return ErrItemIsDeleted
	}
	if units <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", units))
	}
	i.quantity += units
	return nil
}

// ChangePrice updates the live price. Existing order lines keep their copy.
func (i *Item) ChangePrice(price decimal.Decimal) error {
	if i.IsDeleted() {
		return ErrItemIsDeleted
	}
	return i.setPrice(price)
}

// SetQuantity overwrites the stock count after a manual stock take.
func (i *Item) SetQuantity(quantity int) error {
	if i.IsDeleted() {
		return ErrItemIsDeleted
	}
	return i.setQuantity(quantity)
}

// SoftDelete hides the item from listings and reservations.
func (i *Item) SoftDelete(at time.Time) error {
	if i.IsDeleted() {
		return ErrItemIsDeleted
	}
	deletedAt := at.UTC()
	i.deletedAt = &deletedAt
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	i.warehouseID = warehouseID
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if !price.Equal(price.Round(PriceScale)) {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s has more than %d decimal places", price, PriceScale))
	}
	i.price = price.Round(PriceScale)
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	i.quantity = quantity
	return nil
}
