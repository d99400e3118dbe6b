package commands

import (
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is issued by the warehouse side to confirm a pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(principal kernel.Principal, orderID kernel.UUID) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		orderID.Validate(),
	); err != nil {
		return AcceptOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
