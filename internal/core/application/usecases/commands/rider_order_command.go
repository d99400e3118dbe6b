package commands

import (
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/guard"
)

var (
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// riderOrderCommand carries the rider and the order the rider acts upon.
type riderOrderCommand struct {
	principal kernel.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func newRiderOrderCommand(principal kernel.Principal, orderID kernel.UUID) (riderOrderCommand, error) {
	cmd := riderOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		orderID.Validate(),
	); err != nil {
		return riderOrderCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c riderOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c riderOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StartDeliveryCommand is sent by the assigned rider when the order leaves
// the warehouse.
type StartDeliveryCommand struct {
	riderOrderCommand
}

func NewStartDeliveryCommand(principal kernel.Principal, orderID kernel.UUID) (StartDeliveryCommand, error) {
	base, err := newRiderOrderCommand(principal, orderID)
	if err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{riderOrderCommand: base}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// CompleteDeliveryCommand is sent by the assigned rider at handover.
type CompleteDeliveryCommand struct {
	riderOrderCommand
}

func NewCompleteDeliveryCommand(principal kernel.Principal, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	base, err := newRiderOrderCommand(principal, orderID)
	if err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{riderOrderCommand: base}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}
