package commands

import (
	"context"
	"errors"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/rider"
	"stockway/internal/pkg/errs"
)

var (
	ErrUserIsNotRider         = errs.NewBusinessRuleError("user_role", "User does not have the RIDER role")
	ErrRiderAlreadyRegistered = errs.NewConflictError("rider", "User is already registered as a rider")
)

type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{uowFactory: uowFactory}
}

// Handle registers the user as an available rider of the warehouse. The
// user must have synced a RIDER profile first.
func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	w, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "register rider", w); err != nil {
		return err
	}

	u, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	if u.Role() != kernel.RoleRider {
		return ErrUserIsNotRider
	}

	riderRepo := uow.RiderRepository()
	_, err = riderRepo.Get(ctx, cmd.UserID())
	switch {
	case err == nil:
		return ErrRiderAlreadyRegistered
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	r, err := rider.NewRider(cmd.UserID(), w.ID())
	if err != nil {
		return err
	}

	if err = riderRepo.Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateRiderLocationCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewUpdateRiderLocationCommandHandler(uowFactory RiderUoWFactory) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "update rider location", kernel.RoleRider); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, principal.UserID())
	if err != nil {
		return err
	}

	if err = r.UpdateLocation(cmd.Location()); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type SetRiderStatusCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewSetRiderStatusCommandHandler(uowFactory RiderUoWFactory) SetRiderStatusCommandHandler {
	return SetRiderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the rider after the change. A rider carrying a delivery
// cannot change duty status until it is completed or cancelled.
func (h SetRiderStatusCommandHandler) Handle(ctx context.Context, cmd SetRiderStatusCommand) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "set rider status", kernel.RoleRider); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, principal.UserID())
	if err != nil {
		return nil, err
	}

	if r.Status() == rider.Busy {
		return nil, rider.ErrRiderIsBusy
	}
	if cmd.Status() == rider.Inactive {
		err = r.Deactivate()
	} else {
		err = r.Activate()
	}
	if err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
