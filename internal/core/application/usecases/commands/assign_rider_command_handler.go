package commands

import (
	"context"
	"fmt"

	"stockway/internal/core/domain/model/order"
	"stockway/internal/pkg/errs"
)

var ErrRiderOfAnotherWarehouse = errs.NewBusinessRuleError("rider_warehouse", "Rider does not work for this warehouse")

// AssignRiderCommandHandler attaches a chosen rider to the delivery leg of
// an accepted order and marks the rider busy.
//
// Example:
//
//	handler := NewAssignRiderCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // the order already has a rider
//	case errors.Is(err, rider.ErrRiderIsNotAvailable):
//	    // the rider is busy or off duty
//	}
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignRiderCommandHandler(uowFactory UoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle locks the order, its delivery and the rider, in that order, then
// checks the order is accepted, the rider works for the order's warehouse
// and is available.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	w, err := uow.WarehouseRepository().Get(ctx, o.WarehouseID())
	if err != nil {
		return err
	}
	if err = authorizeWarehouse(cmd.Principal(), "assign rider", w); err != nil {
		return err
	}

	if o.Status() != order.Accepted {
		return errs.NewBusinessRuleError("order_accepted",
			fmt.Sprintf("Order must be accepted before assigning a rider, current status is %s", o.Status()))
	}

	deliveryRepo := uow.DeliveryRepository()
	leg, err := deliveryRepo.GetForUpdate(ctx, o.ID())
	if err != nil {
		return err
	}

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if !r.WorksFor(o.WarehouseID()) {
		return ErrRiderOfAnotherWarehouse
	}

	if err = leg.AssignRider(r.ID()); err != nil {
		return err
	}
	if err = r.MarkBusy(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, leg); err != nil {
		return err
	}
	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
