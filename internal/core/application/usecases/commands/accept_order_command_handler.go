package commands

import (
	"context"

	"stockway/internal/core/domain/model/delivery"
)

// AcceptOrderCommandHandler moves a pending order to accepted and opens its
// unassigned delivery leg in the same transaction.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle locks the order, checks that the caller manages its warehouse (or
// is an admin) and applies the transition.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err = authorizeWarehouse(cmd.Principal(), "accept order", w); err != nil {
		return err
	}

	if err = o.Accept(); err != nil {
		return err
	}

	leg, err := delivery.NewDelivery(o.ID(), o.WarehouseID())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, leg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
