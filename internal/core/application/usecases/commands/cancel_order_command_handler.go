package commands

import (
	"context"

	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"
)

// CancelOrderCommandHandler lets the owning shopkeeper withdraw a pending or
// accepted order. For an accepted order the delivery leg is cancelled and
// its rider, if any, is released back to the pool.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "cancel order", kernel.RoleShopkeeper); err != nil {
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
	if !o.IsPlacedBy(principal.UserID()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	wasAccepted := o.Status() == order.Accepted
	if err = o.Cancel(); err != nil {
		return err
	}

	if wasAccepted {
		if err = h.cancelDelivery(ctx, uow, o.ID()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CancelOrderCommandHandler) cancelDelivery(ctx context.Context, uow UoW, orderID kernel.UUID) error {
	deliveryRepo := uow.DeliveryRepository()
	leg, err := deliveryRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if riderID := leg.RiderID(); riderID != nil {
		riderRepo := uow.RiderRepository()
		r, riderErr := riderRepo.GetForUpdate(ctx, *riderID)
		if riderErr != nil {
			return riderErr
		}
		if err = r.Release(); err != nil {
			return err
		}
		if err = riderRepo.Update(ctx, r); err != nil {
			return err
		}
	}

	if err = leg.Cancel(); err != nil {
		return err
	}

	return deliveryRepo.Update(ctx, leg)
}
