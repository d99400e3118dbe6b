package commands

import (
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateItemCommandIsNotConstructed = errors.New(
		"CreateItemCommand must be created via NewCreateItemCommand constructor",
	)
	ErrRestockItemCommandIsNotConstructed = errors.New(
		"RestockItemCommand must be created via NewRestockItemCommand constructor",
	)
	ErrDeleteItemCommandIsNotConstructed = errors.New(
		"DeleteItemCommand must be created via NewDeleteItemCommand constructor",
	)
	ErrUpdateItemCommandIsNotConstructed = errors.New(
		"UpdateItemCommand must be created via NewUpdateItemCommand constructor",
	)
)

// CreateItemCommand adds a stock keeping unit to a warehouse catalogue.
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	itemID      kernel.UUID
	warehouseID kernel.UUID
	name        string
	sku         string
	price       decimal.Decimal
	quantity    int

	guard guard.ConstructorGuard
}

func NewCreateItemCommand(
	principal kernel.Principal,
	itemID kernel.UUID,
	warehouseID kernel.UUID,
	name string,
	sku string,
	price decimal.Decimal,
	quantity int,
) (CreateItemCommand, error) {
	cmd := CreateItemCommand{
		name:     name,
		sku:      sku,
		price:    price,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		itemID.Validate(),
		warehouseID.Validate(),
	); err != nil {
		return CreateItemCommand{}, err
	}
	cmd.itemID = itemID
	cmd.warehouseID = warehouseID

	return cmd, nil
}

func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

func (c CreateItemCommand) Principal() kernel.Principal {
	return c.principal
}

func (c CreateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c CreateItemCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateItemCommand) Name() string {
	return c.name
}

func (c CreateItemCommand) SKU() string {
	return c.sku
}

func (c CreateItemCommand) Price() decimal.Decimal {
	return c.price
}

func (c CreateItemCommand) Quantity() int {
	return c.quantity
}

// RestockItemCommand adds units to an existing item.
type RestockItemCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	itemID    kernel.UUID
	units     int

	guard guard.ConstructorGuard
}

func NewRestockItemCommand(principal kernel.Principal, itemID kernel.UUID, units int) (RestockItemCommand, error) {
	cmd := RestockItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		itemID.Validate(),
		cmd.setUnits(units),
	); err != nil {
		return RestockItemCommand{}, err
	}
	cmd.itemID = itemID

	return cmd, nil
}

func (c RestockItemCommand) Validate() error {
	return c.guard.Validate(ErrRestockItemCommandIsNotConstructed)
}

func (c RestockItemCommand) Principal() kernel.Principal {
	return c.principal
}

func (c RestockItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c RestockItemCommand) Units() int {
	return c.units
}

func (c *RestockItemCommand) setUnits(units int) error {
	if units <= 0 {
		return errs.NewValueIsOutOfRangeError("units", units, 1, "unbounded")
	}
	c.units = units
	return nil
}

// DeleteItemCommand soft-deletes an item. Order lines keep referencing it.
type DeleteItemCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	itemID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteItemCommand(principal kernel.Principal, itemID kernel.UUID) (DeleteItemCommand, error) {
	cmd := DeleteItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		itemID.Validate(),
	); err != nil {
		return DeleteItemCommand{}, err
	}
	cmd.itemID = itemID

	return cmd, nil
}

func (c DeleteItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteItemCommandIsNotConstructed)
}

func (c DeleteItemCommand) Principal() kernel.Principal {
	return c.principal
}

func (c DeleteItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// UpdateItemCommand changes the live price and/or the stock count of an
// item. Nil fields are left as they are; at least one must be set.
type UpdateItemCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	itemID    kernel.UUID
	price     *decimal.Decimal
	quantity  *int

	guard guard.ConstructorGuard
}

func NewUpdateItemCommand(
	principal kernel.Principal,
	itemID kernel.UUID,
	price *decimal.Decimal,
	quantity *int,
) (UpdateItemCommand, error) {
	cmd := UpdateItemCommand{
		price:    price,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	var changeErr error
	if price == nil && quantity == nil {
		changeErr = errs.NewValueIsRequiredError("price or quantity")
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		itemID.Validate(),
		changeErr,
	); err != nil {
		return UpdateItemCommand{}, err
	}
	cmd.itemID = itemID

	return cmd, nil
}

func (c UpdateItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemCommandIsNotConstructed)
}

func (c UpdateItemCommand) Principal() kernel.Principal {
	return c.principal
}

func (c UpdateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Price returns the new price, or nil to keep the current one.
func (c UpdateItemCommand) Price() *decimal.Decimal {
	return c.price
}

// Quantity returns the new stock count, or nil to keep the current one.
func (c UpdateItemCommand) Quantity() *int {
	return c.quantity
}
