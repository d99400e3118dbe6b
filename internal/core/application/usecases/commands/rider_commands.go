package commands

import (
	"errors"
	"fmt"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/pkg/errs"
	"stockway/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
		"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
	)
	ErrSetRiderStatusCommandIsNotConstructed = errors.New(
		"SetRiderStatusCommand must be created via NewSetRiderStatusCommand constructor",
	)
)

// RegisterRiderCommand attaches a user holding the RIDER role to a warehouse.
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	principal   kernel.Principal
	userID      kernel.UUID
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(principal kernel.Principal, userID kernel.UUID, warehouseID kernel.UUID) (RegisterRiderCommand, error) {
	cmd := RegisterRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var userErr, warehouseErr error
	if err := userID.Validate(); err != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	if err := warehouseID.Validate(); err != nil {
		warehouseErr = errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		userErr,
		warehouseErr,
	); err != nil {
		return RegisterRiderCommand{}, err
	}
	cmd.userID = userID
	cmd.warehouseID = warehouseID

	return cmd, nil
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c RegisterRiderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterRiderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// UpdateRiderLocationCommand reports the calling rider's position.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdateRiderLocationCommand(principal kernel.Principal, location kernel.GeoPoint) (UpdateRiderLocationCommand, error) {
	cmd := UpdateRiderLocationCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		location.Validate(),
	); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return cmd, nil
}

func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

func (c UpdateRiderLocationCommand) Principal() kernel.Principal {
	return c.principal
}

func (c UpdateRiderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// SetRiderStatusCommand lets the calling rider go on or off duty. Busy is
// set by assignment only.
type SetRiderStatusCommand struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	status    rider.Status

	guard guard.ConstructorGuard
}

func NewSetRiderStatusCommand(principal kernel.Principal, status rider.Status) (SetRiderStatusCommand, error) {
	cmd := SetRiderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	var statusErr error
	if status != rider.Available && status != rider.Inactive {
		statusErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not one of %s, %s", string(status), rider.Available, rider.Inactive))
	}

	if err := errors.Join(
		setPrincipal(&cmd.principal, principal),
		statusErr,
	); err != nil {
		return SetRiderStatusCommand{}, err
	}
	cmd.status = status

	return cmd, nil
}

func (c SetRiderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderStatusCommandIsNotConstructed)
}

func (c SetRiderStatusCommand) Principal() kernel.Principal {
	return c.principal
}

func (c SetRiderStatusCommand) Status() rider.Status {
	return c.status
}
