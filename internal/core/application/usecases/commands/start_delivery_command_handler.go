package commands

import (
	"context"

	"stockway/internal/core/domain/model/delivery"
	"stockway/internal/core/domain/model/kernel"
	"stockway/internal/core/domain/model/order"
)

// StartDeliveryCommandHandler moves an accepted order and its delivery leg
// to in_transit on behalf of the assigned rider.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewStartDeliveryCommandHandler(uowFactory UoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	principal := cmd.Principal()
	if err := requireRole(principal, "start delivery", kernel.RoleRider); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, leg, err := loadRiderOrder(ctx, uow, principal, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.StartTransit(); err != nil {
		return err
	}
	if err = leg.Start(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Update(ctx, leg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadRiderOrder locks the order and its delivery leg and hides both from
// riders the leg is not assigned to.
func loadRiderOrder(
	ctx context.Context,
	uow UoW,
	principal kernel.Principal,
	orderID kernel.UUID,
) (*order.Order, *delivery.Delivery, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrOrderNotAssignedToRider)
	}

	leg, err := uow.DeliveryRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrOrderNotAssignedToRider)
	}

	if !leg.IsAssignedTo(principal.UserID()) {
		return nil, nil, ErrOrderNotAssignedToRider
	}

	return o, leg, nil
}
