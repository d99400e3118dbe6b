package commands

import (
	"errors"
	"strings"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/services"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// maxIdempotencyKeyLength bounds the client-supplied Idempotency-Key.
const maxIdempotencyKeyLength = 128

// PlaceOrderCommand represents a shopkeeper's checkout against one warehouse.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(principal, kernel.NewUUID(), warehouseID, []services.RequestedLine{
//	    {ItemID: riceID, Quantity: 2},
//	}, c.Request().Header.Get("Idempotency-Key"))
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	principal      kernel.Principal
	orderID        kernel.UUID
	warehouseID    kernel.UUID
	lines          []services.RequestedLine
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the request shape. Basket rules (empty,
// duplicates, quantities) are enforced again by the reservation itself.
func NewPlaceOrderCommand(
	principal kernel.Principal,
	orderID kernel.UUID,
	warehouseID kernel.UUID,
	lines []services.RequestedLine,
	idempotencyKey string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		cmd.setOrderID(orderID),
		cmd.setWarehouseID(warehouseID),
		cmd.setLines(lines),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c PlaceOrderCommand) Lines() []services.RequestedLine {
	lines := make([]services.RequestedLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IdempotencyKey is empty when the client did not send one.
func (c PlaceOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	c.warehouseID = warehouseID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []services.RequestedLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("At least one item is required"))
	}
	c.lines = make([]services.RequestedLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *PlaceOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency_key", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
