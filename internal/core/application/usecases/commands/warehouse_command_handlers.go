package commands

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/warehouse"
)

type CreateWarehouseCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateWarehouseCommandHandler(uowFactory CatalogUoWFactory) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{uowFactory: uowFactory}
}

// Handle registers the warehouse with the caller as its manager. The
// warehouse starts active and unapproved.
func (h CreateWarehouseCommandHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "create warehouse", kernel.RoleWarehouseManager, kernel.RoleAdmin); err != nil {
		return err
	}

	w, err := warehouse.NewWarehouse(cmd.WarehouseID(), principal.UserID(), cmd.Name(), cmd.Address(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WarehouseRepository().Add(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type ApproveWarehouseCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewApproveWarehouseCommandHandler(uowFactory CatalogUoWFactory) ApproveWarehouseCommandHandler {
	return ApproveWarehouseCommandHandler{uowFactory: uowFactory}
}

func (h ApproveWarehouseCommandHandler) Handle(ctx context.Context, cmd ApproveWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireRole(cmd.Principal(), "approve warehouse", kernel.RoleAdmin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WarehouseRepository()
	w, err := repo.Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}

	if err = w.Approve(); err != nil {
		return err
	}

	if err = repo.Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type SetWarehouseActiveCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSetWarehouseActiveCommandHandler(uowFactory CatalogUoWFactory) SetWarehouseActiveCommandHandler {
	return SetWarehouseActiveCommandHandler{uowFactory: uowFactory}
}

func (h SetWarehouseActiveCommandHandler) Handle(ctx context.Context, cmd SetWarehouseActiveCommand) error {
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

	repo := uow.WarehouseRepository()
	w, err := repo.Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "change warehouse activity", w); err != nil {
		return err
	}

	if cmd.Active() {
		err = w.Activate()
	} else {
		w.Deactivate()
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
