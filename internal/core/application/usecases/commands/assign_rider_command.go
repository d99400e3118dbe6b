package commands

import (
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand lets the warehouse side hand an accepted order to a
// specific rider instead of waiting for automatic assignment.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	orderID   kernel.UUID
	riderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(principal kernel.Principal, orderID kernel.UUID, riderID kernel.UUID) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		orderID.Validate(),
		cmd.setRiderID(riderID),
	); err != nil {
		return AssignRiderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rider_id", err)
	}
	c.riderID = riderID
	return nil
}
