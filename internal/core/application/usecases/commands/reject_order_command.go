package commands

import (
	"errors"
	"strings"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand declines a pending order with a reason shown to the shopkeeper.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	orderID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(principal kernel.Principal, orderID kernel.UUID, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		orderID.Validate(),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection_reason")
	}
	c.reason = reason
	return nil
}
