package commands

import (
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/pkg/guard"
)

var (
	ErrCreateWarehouseCommandIsNotConstructed = errors.New(
		"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
	)
	ErrApproveWarehouseCommandIsNotConstructed = errors.New(
		"ApproveWarehouseCommand must be created via NewApproveWarehouseCommand constructor",
	)
	ErrSetWarehouseActiveCommandIsNotConstructed = errors.New(
		"SetWarehouseActiveCommand must be created via NewSetWarehouseActiveCommand constructor",
	)
)

// CreateWarehouseCommand registers a warehouse managed by the caller.
// Location is optional; without it the warehouse is invisible to nearby
// search and automatic rider assignment.
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	warehouseID kernel.UUID
	name        string
	address     string
	location    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewCreateWarehouseCommand(
	principal kernel.Principal,
	warehouseID kernel.UUID,
	name string,
	address string,
	location *kernel.GeoPoint,
) (CreateWarehouseCommand, error) {
	cmd := CreateWarehouseCommand{
		name:    name,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		warehouseID.Validate(),
	); err != nil {
		return CreateWarehouseCommand{}, err
	}
	cmd.warehouseID = warehouseID

	if location != nil {
		if err := location.Validate(); err != nil {
			return CreateWarehouseCommand{}, err
		}
		loc := *location
		cmd.location = &loc
	}

	return cmd, nil
}

func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

func (c CreateWarehouseCommand) Principal() kernel.Principal {
	return c.principal
}

func (c CreateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateWarehouseCommand) Name() string {
	return c.name
}

func (c CreateWarehouseCommand) Address() string {
	return c.address
}

func (c CreateWarehouseCommand) Location() *kernel.GeoPoint {
	return c.location
}

// ApproveWarehouseCommand is an admin decision allowing a warehouse to take orders.
type ApproveWarehouseCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveWarehouseCommand(principal kernel.Principal, warehouseID kernel.UUID) (ApproveWarehouseCommand, error) {
	cmd := ApproveWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		warehouseID.Validate(),
	); err != nil {
		return ApproveWarehouseCommand{}, err
	}
	cmd.warehouseID = warehouseID

	return cmd, nil
}

func (c ApproveWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrApproveWarehouseCommandIsNotConstructed)
}

func (c ApproveWarehouseCommand) Principal() kernel.Principal {
	return c.principal
}

func (c ApproveWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// SetWarehouseActiveCommand pauses or resumes order intake.
type SetWarehouseActiveCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	warehouseID kernel.UUID
	active      bool

	guard guard.ConstructorGuard
}

func NewSetWarehouseActiveCommand(principal kernel.Principal, warehouseID kernel.UUID, active bool) (SetWarehouseActiveCommand, error) {
	cmd := SetWarehouseActiveCommand{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		warehouseID.Validate(),
	); err != nil {
		return SetWarehouseActiveCommand{}, err
	}
	cmd.warehouseID = warehouseID

	return cmd, nil
}

func (c SetWarehouseActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetWarehouseActiveCommandIsNotConstructed)
}

func (c SetWarehouseActiveCommand) Principal() kernel.Principal {
	return c.principal
}

func (c SetWarehouseActiveCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c SetWarehouseActiveCommand) Active() bool {
	return c.active
}
