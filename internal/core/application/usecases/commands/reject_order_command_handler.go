package commands

import (
	"context"
)

// RejectOrderCommandHandler moves a pending order to rejected. Reserved
// stock is not returned to the items.
type RejectOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectOrderCommandHandler(uowFactory UoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	w, err := uow.WarehouseRepository().Get(ctx, o.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "reject order", w); err != nil {
		return err
	}

	if err = o.Reject(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
